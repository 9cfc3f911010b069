package dto

type WeeklyInput struct {
	Window int
}

type CalendarInput struct {
	Days int
	End  string
}

type TopCompaniesInput struct {
	K int
}

type TopRoleTermsInput struct {
	N        int
	NgramMin int
	NgramMax int
}

type FunnelInput struct {
	Stages []string
}

type StatusCountInput struct {
	Status string
}

type WindowCountInput struct {
	Days int
	End  string
}

type WeekRowOutput struct {
	WeekStart string  `json:"week_start" yaml:"week_start"`
	Apps      int     `json:"apps" yaml:"apps"`
	MovingAvg float64 `json:"moving_avg" yaml:"moving_avg"`
}

type CompanyCountOutput struct {
	Company string `json:"company" yaml:"company"`
	Count   int    `json:"count" yaml:"count"`
}

type TermCountOutput struct {
	Term  string `json:"term" yaml:"term"`
	Count int    `json:"count" yaml:"count"`
}

type CalendarCellOutput struct {
	Date      string `json:"date" yaml:"date"`
	N         int    `json:"n" yaml:"n"`
	Weekday   int    `json:"dow" yaml:"dow"`
	WeekIndex int    `json:"week_idx" yaml:"week_idx"`
}

type MonthTickOutput struct {
	WeekIndex int    `json:"week_idx" yaml:"week_idx"`
	Label     string `json:"label" yaml:"label"`
}

type CalendarOutput struct {
	Start string               `json:"start" yaml:"start"`
	End   string               `json:"end" yaml:"end"`
	Weeks int                  `json:"weeks" yaml:"weeks"`
	Max   int                  `json:"max" yaml:"max"`
	Cells []CalendarCellOutput `json:"cells" yaml:"cells"`
	Ticks []MonthTickOutput    `json:"ticks" yaml:"ticks"`

	TickWeeks  []int    `json:"tick_weeks" yaml:"tick_weeks"`
	TickLabels []string `json:"tick_labels" yaml:"tick_labels"`
}

type StageCountOutput struct {
	Stage string `json:"stage" yaml:"stage"`
	N     int    `json:"n" yaml:"n"`
}

type WeekdayStatusOutput struct {
	Weekday string `json:"weekday" yaml:"weekday"`
	Status  string `json:"status" yaml:"status"`
	N       int    `json:"n" yaml:"n"`
}

type ResponseLagOutput struct {
	Lags   []int   `json:"lags" yaml:"lags"`
	Count  int     `json:"count" yaml:"count"`
	Min    int     `json:"min" yaml:"min"`
	Max    int     `json:"max" yaml:"max"`
	Median float64 `json:"median" yaml:"median"`
}

type DailyOutput struct {
	Day string `json:"day" yaml:"day"`
	N   int    `json:"n" yaml:"n"`
	Cum int    `json:"cum" yaml:"cum"`
}

type SummaryOutput struct {
	Total        int `json:"total" yaml:"total"`
	RecentDays   int `json:"recent_days" yaml:"recent_days"`
	Recent       int `json:"recent" yaml:"recent"`
	Applied      int `json:"applied" yaml:"applied"`
	Rejected     int `json:"rejected" yaml:"rejected"`
	InvalidDates int `json:"invalid_dates" yaml:"invalid_dates"`
}

type DashboardOutput struct {
	AsOf          string                `json:"as_of" yaml:"as_of"`
	Summary       SummaryOutput         `json:"summary" yaml:"summary"`
	Weekly        []WeekRowOutput       `json:"weekly" yaml:"weekly"`
	Calendar      CalendarOutput        `json:"calendar" yaml:"calendar"`
	TopCompanies  []CompanyCountOutput  `json:"top_companies" yaml:"top_companies"`
	TopRoleTerms  []TermCountOutput     `json:"top_role_terms" yaml:"top_role_terms"`
	Funnel        []StageCountOutput    `json:"funnel" yaml:"funnel"`
	WeekdayStatus []WeekdayStatusOutput `json:"weekday_status" yaml:"weekday_status"`
	ResponseLag   ResponseLagOutput     `json:"response_lag" yaml:"response_lag"`
	Daily         []DailyOutput         `json:"daily" yaml:"daily"`
}
