package req

type JoinRoomRequest struct {
	EventID uint `json:"eventId" validate:"required"`
}

type SendMessageRequest struct {
	EventID    uint   `json:"eventId" validate:"required"`
	ReceiverID uint   `json:"receiverId" validate:"required"`
	Message    string `json:"message" validate:"required,max=4000"`
}

type ThreadQuery struct {
	WithUser uint `query:"withUser" validate:"required"`
}
