package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	fset := token.NewFileSet()
	root := filepath.Join("..", "modules")
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		slash := filepath.ToSlash(path)
		module := moduleName(slash)
		layer := detectLayer(slash)
		if module == "" || layer == "" {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if !strings.Contains(importPath, "jobtrack/internal/modules/") {
				continue
			}
			if violatesLayerRule(module, layer, importPath) {
				t.Fatalf("forbidden import in %s (%s): %s", slash, layer, importPath)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk modules: %v", err)
	}
}

func moduleName(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

func detectLayer(path string) string {
	for _, layer := range []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"} {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

func hasLayer(path, layer string) bool {
	return strings.Contains(path, "/"+layer+"/") || strings.HasSuffix(path, "/"+layer)
}

func isPortIn(path string) bool {
	return hasLayer(path, "port/in")
}

func isDTO(path string) bool {
	return hasLayer(path, "dto")
}

func isInner(path string) bool {
	return hasLayer(path, "service") || hasLayer(path, "adapter/in") || hasLayer(path, "adapter/out") || hasLayer(path, "usecase")
}

func violatesLayerRule(module, layer, importPath string) bool {
	sameModule := strings.Contains(importPath, "/internal/modules/"+module+"/")
	if !sameModule {
		if isInner(importPath) {
			return true
		}
		if isPortIn(importPath) || isDTO(importPath) {
			return false
		}
		// Another module's domain is shared vocabulary for this module's
		// domain only.
		if hasLayer(importPath, "domain") {
			return layer != "domain"
		}
		return true
	}

	switch layer {
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return hasLayer(importPath, "adapter/in") || hasLayer(importPath, "adapter/out")
	case "service":
		return hasLayer(importPath, "adapter/in") || hasLayer(importPath, "adapter/out") || hasLayer(importPath, "usecase")
	case "domain":
		return isInner(importPath) || hasLayer(importPath, "port/out")
	default:
		return false
	}
}

func TestLayerRuleExamples(t *testing.T) {
	t.Parallel()
	cases := []struct {
		module, layer, imp string
		forbidden          bool
	}{
		{"analytics", "service", "jobtrack/internal/modules/tracker/port/in", false},
		{"analytics", "service", "jobtrack/internal/modules/tracker/dto", false},
		{"analytics", "service", "jobtrack/internal/modules/tracker/service", true},
		{"analytics", "domain", "jobtrack/internal/modules/tracker/domain", false},
		{"analytics", "service", "jobtrack/internal/modules/tracker/domain", true},
		{"analytics", "usecase", "jobtrack/internal/modules/tracker/domain", true},
		{"analytics", "domain", "jobtrack/internal/modules/tracker/port/out", true},
		{"tracker", "usecase", "jobtrack/internal/modules/tracker/adapter/out", true},
		{"tracker", "adapter/in", "jobtrack/internal/modules/tracker/domain", true},
		{"tracker", "domain", "jobtrack/internal/modules/tracker/port/out", true},
	}
	for _, tc := range cases {
		if got := violatesLayerRule(tc.module, tc.layer, tc.imp); got != tc.forbidden {
			t.Fatalf("%s/%s importing %s: expected forbidden=%v, got %v", tc.module, tc.layer, tc.imp, tc.forbidden, got)
		}
	}
}
