package validate

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/baharkarakas/bloglist-backend/internal/models"
)

// BlogPayload is the request body of blog create and update. Unknown fields
// such as id or user are ignored so clients may send a whole blog back.
type BlogPayload struct {
	Title  *string         `json:"title"`
	Author *string         `json:"author"`
	URL    *string         `json:"url"`
	Likes  json.RawMessage `json:"likes"`
}

// BlogCreate checks a creation payload: title and url are required, likes
// defaults to 0 and must otherwise be a non-negative integer.
func BlogCreate(p BlogPayload) (models.NewBlog, error) {
	var errs Errs
	nb := models.NewBlog{Author: p.Author}

	if p.Title == nil {
		errs.add(&ErrField{Field: "title", Msg: "required"})
	} else {
		errs.add(Required("title", *p.Title))
		nb.Title = *p.Title
	}
	if p.URL == nil {
		errs.add(&ErrField{Field: "url", Msg: "required"})
	} else {
		errs.add(Required("url", *p.URL))
		nb.URL = *p.URL
	}
	likes, ef := likesValue(p.Likes)
	errs.add(ef)
	if likes != nil {
		nb.Likes = *likes
	}

	if err := errs.err(); err != nil {
		return models.NewBlog{}, err
	}
	return nb, nil
}

// BlogUpdate checks the supplied fields of an update payload. Absent or null
// fields are left unchanged.
func BlogUpdate(p BlogPayload) (models.BlogPatch, error) {
	var errs Errs
	patch := models.BlogPatch{Title: p.Title, Author: p.Author, URL: p.URL}

	if p.Title != nil {
		errs.add(Required("title", *p.Title))
	}
	if p.URL != nil {
		errs.add(Required("url", *p.URL))
	}
	likes, ef := likesValue(p.Likes)
	errs.add(ef)
	patch.Likes = likes

	if err := errs.err(); err != nil {
		return models.BlogPatch{}, err
	}
	return patch, nil
}

// likesValue parses raw as a non-negative JSON integer. Absent and null give nil.
func likesValue(raw json.RawMessage) (*int64, *ErrField) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	n, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return nil, &ErrField{Field: "likes", Msg: "must be an integer"}
	}
	if ef := MinInt("likes", n, 0); ef != nil {
		return nil, ef
	}
	return &n, nil
}
