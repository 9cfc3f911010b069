package dto

import (
	"io"
	"time"
)

type AddInput struct {
	Company     string
	Role        string
	DateApplied string
	Status      string
}

type ListInput struct {
	Status        string
	DateStart     string
	DateEnd       string
	CompanySubstr string
	RoleSubstr    string
	ImportBatch   string
	Limit         int
}

type UpdateStatusInput struct {
	ID     int64
	Status string
}

type RecordResponseInput struct {
	ID   int64
	Date string
}

// ImportInput describes a CSV upload. Mapping sends target fields
// (company, role, date_applied, status) to CSV header names; unmapped
// targets are resolved by header aliases.
type ImportInput struct {
	Reader  io.Reader
	Mapping map[string]string
}

type ImportOutput struct {
	BatchID         string
	Inserted        int
	Skipped         int
	InvalidDates    int
	UnknownStatuses []string
	Delimiter       string
	Encoding        string
}

type ExportInput struct {
	Writer io.Writer
	Filter ListInput
}

type SeedInput struct {
	Count int
	Seed  int64
}

type SeedOutput struct {
	BatchID  string
	Inserted int
}

type DeleteOutput struct {
	Deleted int64
}

type ApplicationOutput struct {
	ID           int64     `json:"id" yaml:"id"`
	Company      string    `json:"company" yaml:"company"`
	Role         string    `json:"role" yaml:"role"`
	DateApplied  string    `json:"date_applied" yaml:"date_applied"`
	Status       string    `json:"status" yaml:"status"`
	ResponseDate string    `json:"response_date,omitempty" yaml:"response_date,omitempty"`
	ImportBatch  string    `json:"import_batch,omitempty" yaml:"import_batch,omitempty"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}
