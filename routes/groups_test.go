package routes

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGroup(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "uid-leo", "leo")

	w := env.putJSON(t, "/groups", "uid-leo", map[string]string{
		"title":       "Street Cats",
		"description": "cats of the neighborhood",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.get(t, "/group/street-cats", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	group := data["group"].(map[string]interface{})
	assert.Equal(t, "Street Cats", group["title"])
	assert.Equal(t, "street-cats", group["slug"])
}

func TestCreateGroupShortTitle(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "uid-leo", "leo")

	w := env.putJSON(t, "/groups", "uid-leo", map[string]string{"title": "cats"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateGroupDuplicateTitle(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "uid-leo", "leo")

	require.Equal(t, http.StatusOK,
		env.putJSON(t, "/groups", "uid-leo", map[string]string{"title": "Street Cats"}).Code)
	assert.Equal(t, http.StatusConflict,
		env.putJSON(t, "/groups", "uid-leo", map[string]string{"title": "Street Cats"}).Code)
}

func TestGroupsDirectory(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "uid-leo", "leo")
	require.Equal(t, http.StatusOK,
		env.putJSON(t, "/groups", "uid-leo", map[string]string{"title": "Street Cats"}).Code)

	w := env.get(t, "/groups", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "street-cats")
}
