package question

// FormatCategories maps category ids to display names. Later duplicates win.
func FormatCategories(categories []Category) (map[int64]string, error) {
	if len(categories) == 0 {
		return nil, ErrEmptyCategorySet
	}

	out := make(map[int64]string, len(categories))
	for _, c := range categories {
		out[c.ID] = c.Type
	}
	return out, nil
}
