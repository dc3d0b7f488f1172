package repository

import "encoding/json"

// encodeGenres serializes a genre list to the JSON text stored in the
// genres column.  A nil or empty list is stored as "[]" so scans never
// have to deal with NULL.
func encodeGenres(genres []string) (string, error) {
	if len(genres) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(genres)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeGenres parses the JSON text from the genres column back into a
// slice, preserving the order it was submitted in.
func decodeGenres(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var genres []string
	if err := json.Unmarshal([]byte(raw), &genres); err != nil {
		return nil, err
	}
	return genres, nil
}
