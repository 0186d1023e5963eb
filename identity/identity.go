package identity

import (
	"context"
	"errors"

	"solstice/apperr"
	"solstice/db"
	"solstice/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CurrentUser resolves the authenticated user's record. The booking flow
// needs name, email, contact and gender; authentication itself already
// happened in the middleware.
func CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, apperr.Unauthorized("Missing user identity")
	}

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}
	return &user, nil
}
