package services

import (
	"context"
	"errors"
	"strings"

	"Backend-Toolbox/src/database"
	"Backend-Toolbox/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// AuthenticateAdmin checks the credential pair against the admins collection
// and returns the account on success. Authoring endpoints are the only
// authenticated surface; respondents stay anonymous.
func AuthenticateAdmin(ctx context.Context, email, password string) (*models.Admin, error) {
	var admin models.Admin
	err := database.AdminCollection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&admin)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	admin.Password = ""
	return &admin, nil
}
