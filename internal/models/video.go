// video.go
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

package models

import (
	"time"
)

// Video is one generated animation artifact: the generated source code
// plus the externally hosted playable URL. The render metadata fields
// are only populated by the richer creation path; Metadata holds
// anything the render service reports beyond the fixed columns.
type Video struct {
	ID          uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      string    `json:"userId" gorm:"type:char(36);not null;index"`
	Code        string    `json:"code" gorm:"type:text;not null"`
	VideoURL    string    `json:"videoUrl" gorm:"size:1024;not null"`
	ProjectName string    `json:"projectName,omitempty" gorm:"size:255"`
	Iteration   uint64    `json:"iteration,omitempty"`
	FileName    string    `json:"fileName,omitempty" gorm:"size:255"`
	FileClass   string    `json:"fileClass,omitempty" gorm:"size:255"`
	AspectRatio string    `json:"aspectRatio,omitempty" gorm:"size:32"`
	Metadata    JSON      `json:"metadata,omitempty" gorm:"type:json"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName overrides the table name for Video
func (Video) TableName() string {
	return "videos"
}
