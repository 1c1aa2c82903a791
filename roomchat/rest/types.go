package rest

// Room is the directory's record for one chat room.
type Room struct {
	RoomID   string `json:"room_id"`
	RoomName string `json:"room_name"`
	RoomTime uint32 `json:"room_time"`
}

// CreateRoomRequest is the request body for creating a room.
// RoomTime is the room's lifetime in minutes.
type CreateRoomRequest struct {
	RoomName string `json:"room_name"`
	RoomTime uint32 `json:"room_time"`
}

// UserNameRecord carries the display name stored by the identity service.
type UserNameRecord struct {
	UserName string `json:"user_name"`
}
