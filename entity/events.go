package entity

type Event struct {
	BaseEntity
	Title       string `json:"title" gorm:"type:varchar(255);not null"`
	Description string `json:"description" gorm:"type:text"`
	Image       string `json:"image,omitempty" gorm:"type:text"`
	Venue       string `json:"venue" gorm:"type:varchar(255)"`
	EventDate   string `json:"event_date" gorm:"type:varchar(10)"`
	EventTime   string `json:"event_time" gorm:"type:varchar(5)"`
	OrganizerID uint   `json:"organizer_id" gorm:"index;not null"`

	Organizer     User           `json:"-" gorm:"foreignKey:OrganizerID;references:ID"`
	Registrations []Registration `json:"-" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE;"`
}
