package request

type AnalyticsRequest struct {
	From  string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To    string `json:"to" validate:"omitempty,datetime=2006-01-02"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=50"`
}
