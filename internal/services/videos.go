// videos.go
//
// A scalable, high performance drop-in replacement for the animgen nextjs data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of animgen.
// animgen is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// animgen is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with animgen.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"github.com/localnerve/animgen/internal/models"
	"gorm.io/gorm"
)

// VideoOptions carries the optional render metadata of the richer creation
// path.
type VideoOptions struct {
	ProjectName string
	Iteration   uint64
	FileName    string
	FileClass   string
	AspectRatio string
	Metadata    models.JSON
}

// CreateVideo records a generated artifact and increments the owner's video
// counter, both in one transaction. The counter moves by exactly 1 per
// created video, never on updates; a missing user row leaves the counter
// untouched.
func CreateVideo(db *gorm.DB, userID, videoURL, code string, opts *VideoOptions) (*models.Video, error) {
	video := models.Video{
		UserID:   userID,
		Code:     code,
		VideoURL: videoURL,
	}
	if opts != nil {
		video.ProjectName = opts.ProjectName
		video.Iteration = opts.Iteration
		video.FileName = opts.FileName
		video.FileClass = opts.FileClass
		video.AspectRatio = opts.AspectRatio
		video.Metadata = opts.Metadata
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&video).Error; err != nil {
			return err
		}

		_, err := IncrementVideoCount(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &video, nil
}

// UpdateVideo patches any subset of fields and refreshes the update
// timestamp. Ownership is not re-checked here; callers resolve the id from
// an owner-scoped read. Returns nil without error if the video is absent.
func UpdateVideo(db *gorm.DB, videoID uint64, fields map[string]interface{}) (*models.Video, error) {
	var video models.Video
	err := db.First(&video, videoID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	if len(fields) > 0 {
		if err := db.Model(&video).Updates(fields).Error; err != nil {
			return nil, err
		}
	}

	return &video, nil
}

// GetVideosByOwner returns all of the owner's videos in storage order.
func GetVideosByOwner(db *gorm.DB, userID string) ([]models.Video, error) {
	var videos []models.Video
	err := db.Where("user_id = ?", userID).Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}
