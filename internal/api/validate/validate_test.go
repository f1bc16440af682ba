package validate

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/bloglist-backend/internal/apperr"
)

func payload(t *testing.T, body string) BlogPayload {
	t.Helper()
	var p BlogPayload
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	return p
}

func fields(err error) []string {
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.KindValidation {
		return nil
	}
	errs, ok := ae.Details.(Errs)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(errs))
	for _, ef := range errs {
		out = append(out, ef.Field)
	}
	return out
}

func TestBlogCreate_Defaults(t *testing.T) {
	nb, err := BlogCreate(payload(t, `{"title":"Missing likes","author":"de","url":"asdsdf.com"}`))
	require.NoError(t, err)
	assert.Equal(t, int64(0), nb.Likes)
	assert.Equal(t, "Missing likes", nb.Title)
	require.NotNil(t, nb.Author)
	assert.Equal(t, "de", *nb.Author)

	nb, err = BlogCreate(payload(t, `{"title":"t","url":"u","likes":null}`))
	require.NoError(t, err)
	assert.Equal(t, int64(0), nb.Likes)
	assert.Nil(t, nb.Author)
}

func TestBlogCreate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{"missing title and url", `{"author":"missing url and title","likes":0}`, []string{"title", "url"}},
		{"blank title", `{"title":"  ","url":"u"}`, []string{"title"}},
		{"empty url", `{"title":"t","url":""}`, []string{"url"}},
		{"negative likes", `{"title":"t","url":"u","likes":-1}`, []string{"likes"}},
		{"fractional likes", `{"title":"t","url":"u","likes":1.5}`, []string{"likes"}},
		{"string likes", `{"title":"t","url":"u","likes":"7"}`, []string{"likes"}},
		{"everything wrong", `{"likes":true}`, []string{"title", "url", "likes"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BlogCreate(payload(t, tt.body))
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			assert.Equal(t, tt.fields, fields(err))
		})
	}
}

func TestBlogUpdate_Partial(t *testing.T) {
	patch, err := BlogUpdate(payload(t, `{"id":"x","user":{"id":"u"},"likes":8}`))
	require.NoError(t, err)
	require.NotNil(t, patch.Likes)
	assert.Equal(t, int64(8), *patch.Likes)
	assert.Nil(t, patch.Title)
	assert.Nil(t, patch.URL)

	_, err = BlogUpdate(payload(t, `{"title":""}`))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, []string{"title"}, fields(err))

	patch, err = BlogUpdate(payload(t, `{}`))
	require.NoError(t, err)
	assert.Nil(t, patch.Likes)
}

func TestRegistration(t *testing.T) {
	assert.NoError(t, Registration("root", "sekret"))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(Registration("ab", "sekret")))
	assert.Equal(t, []string{"username"}, fields(Registration("ab", "sekret")))
	assert.Equal(t, []string{"username", "password"}, fields(Registration("", "")))
	assert.Equal(t, []string{"password"}, fields(Registration("root", "pw")))
}

func TestErrs_Error(t *testing.T) {
	errs := Errs{{Field: "title", Msg: "required"}, {Field: "url", Msg: "required"}}
	assert.Equal(t, "title: required; url: required", errs.Error())
}
