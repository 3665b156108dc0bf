// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package wallpaper

import "context"

// Repository defines the data access contract for wallpapers.
type Repository interface {
	// Create stores the wallpapers and their images in one transaction.
	Create(context context.Context, wallpapers ...*Wallpaper) error

	FindByID(context context.Context, id string) (*Wallpaper, error)
	List(context context.Context, limit, offset int) ([]*Wallpaper, int, error)
	Update(context context.Context, id string, changes Changes) (*Wallpaper, error)
	Delete(context context.Context, id string) error

	// AppendImage adds an image after the current last position.
	AppendImage(context context.Context, wallpaperID string, image Image) (*Image, error)
}
