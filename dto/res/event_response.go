package res

import "campus-event-chat/entity"

type EventResponse struct {
	entity.Event
	OrganizerName string `json:"organizer_name,omitempty"`
}

type EventDetailResponse struct {
	Event              entity.Event   `json:"event"`
	RegisteredStudents []UserResponse `json:"registeredStudents"`
}
