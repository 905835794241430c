package domain

import "time"

// User is the local record of an external (Firebase) identity.
type User struct {
	ID             string    `json:"_id"`
	FirebaseUID    string    `json:"firebaseUid"`
	Email          string    `json:"email"`
	TotalAdsPosted int       `json:"totalAdsPosted"`
	CreatedAt      time.Time `json:"createdAt"`
}

type FindOrCreateRequest struct {
	UserID string `json:"userId" validate:"required"`
	Email  string `json:"email"`
}

const MessageUserIDRequired = "User ID is required"
