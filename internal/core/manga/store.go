// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga

import "context"

// Repository is the lookup contract other domains use to validate manga references.
type Repository interface {

	/*
		Exists reports whether a manga with the given ID exists.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - bool: true when the row exists
		  - error: Database failures only; a missing row is (false, nil)
	*/
	Exists(context context.Context, id int64) (bool, error)

	/*
		FindByID returns the manga with every translation attached.

		Returns:
		  - *Manga: The hydrated entity
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id int64) (*Manga, error)
}
