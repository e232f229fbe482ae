package services

import (
	"github.com/localnerve/animgen/internal/models"
	"gorm.io/gorm"
)

// CreateUser creates the profile row for an Authorizer identity if it does
// not exist yet. Repeated calls with the same identity key return the
// existing record unchanged.
func CreateUser(db *gorm.DB, userID, email, name, image string) (*models.User, error) {
	user := models.User{
		UserID: userID,
		Email:  email,
		Name:   name,
		Image:  image,
	}

	if err := db.Where("user_id = ?", userID).FirstOrCreate(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUserByID returns the profile for an identity key, or nil if none exists.
func GetUserByID(db *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	err := db.Where("user_id = ?", userID).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// UpdateUser patches the supplied profile fields. Returns nil without error
// if no user with that identity key exists.
func UpdateUser(db *gorm.DB, userID string, fields map[string]interface{}) (*models.User, error) {
	var user models.User
	err := db.Where("user_id = ?", userID).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	if len(fields) > 0 {
		if err := db.Model(&user).Updates(fields).Error; err != nil {
			return nil, err
		}
	}

	return &user, nil
}

// IncrementVideoCount adds 1 to the user's video counter. Returns nil
// without error if no user with that identity key exists.
func IncrementVideoCount(db *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	err := db.Where("user_id = ?", userID).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	if err := db.Model(&user).Update("video_count", gorm.Expr("video_count + ?", 1)).Error; err != nil {
		return nil, err
	}

	user.VideoCount++
	return &user, nil
}
