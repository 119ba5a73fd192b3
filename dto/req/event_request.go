package req

type CreateEventRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Image       string `json:"image" validate:"omitempty,url"`
	Venue       string `json:"venue" validate:"required,max=255"`
	EventDate   string `json:"event_date" validate:"required,datetime=2006-01-02"`
	EventTime   string `json:"event_time" validate:"omitempty,datetime=15:04"`
}

type RegisterEventRequest struct {
	EventID uint `json:"eventId" validate:"required"`
}
