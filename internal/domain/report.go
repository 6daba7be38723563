package domain

// ReportRow is one (company, project, task, calendar day) aggregate of
// closed session time. Day is a UTC date in YYYY-MM-DD form. TotalSeconds
// is exact integer seconds; TotalHours is the rounded convenience value.
// IsDeleted is only meaningful when the report was built with
// IncludeDeleted: it marks rows whose chain contains a soft-deleted
// session, task, project, or company.
type ReportRow struct {
	CompanyName  string
	ProjectName  string
	TaskName     string
	TaskID       int64
	Day          string
	TotalSeconds int64
	TotalHours   float64
	IsDeleted    bool
}

// ReportOptions selects the report variant. The zero value is the default
// view: active chains only, ordered by company, project, task, day.
type ReportOptions struct {
	// IncludeDeleted keeps rows whose chain has soft-deleted entities and
	// flags them instead of filtering them out.
	IncludeDeleted bool
	// BusiestFirst orders by total_seconds descending instead of the
	// canonical name/day order.
	BusiestFirst bool
}
