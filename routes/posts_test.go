package routes

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatube/yatube-be/db"
)

func TestCreatePost(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "uid-leo", "leo")

	w := env.postForm(t, "/create", "uid-leo", map[string]string{"content": "first post"})

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/profile/leo", w.Header().Get("Location"))

	count, err := env.db.CountPosts(context.Background(), &db.PostsListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	posts, err := env.db.GetPosts(context.Background(), &db.PostsListQuery{})
	require.NoError(t, err)
	assert.Equal(t, "uid-leo", posts[0].Author.Id)
	assert.Equal(t, "first post", posts[0].Content)
}

func TestCreatePostRequiresLogin(t *testing.T) {
	env := newTestEnv(t)

	w := env.postForm(t, "/create", "", map[string]string{"content": "no session"})

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/login?next=%2Fcreate", w.Header().Get("Location"))

	count, err := env.db.CountPosts(context.Background(), &db.PostsListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCreatePostEmptyContent(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "uid-leo", "leo")

	w := env.postForm(t, "/create", "uid-leo", map[string]string{"content": ""})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "this field is required")

	count, err := env.db.CountPosts(context.Background(), &db.PostsListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCreatePostWithImage(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "uid-leo", "leo")

	w := env.postMultipart(t, "/create", "uid-leo", "a post with a picture", "cat.png", []byte{1, 2, 3})

	require.Equal(t, http.StatusFound, w.Code)
	posts, err := env.db.GetPosts(context.Background(), &db.PostsListQuery{})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.NotEmpty(t, posts[0].ImageBlobName)

	stored, err := env.bucket.Exists(context.Background(), posts[0].ImageBlobName)
	require.NoError(t, err)
	assert.True(t, stored)
}

func TestCreatePostEmptyImageFile(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "uid-leo", "leo")

	w := env.postMultipart(t, "/create", "uid-leo", "a post", "empty.png", nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "the submitted file is empty")
}

func TestEditPostByAuthor(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "uid-leo", "leo")
	postId, err := env.db.CreatePost(context.Background(), &db.CreatePost{
		AuthorId: "uid-leo",
		Content:  "before",
	})
	require.NoError(t, err)

	w := env.postForm(t, "/posts/1/edit", "uid-leo", map[string]string{"content": "after"})

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/1", w.Header().Get("Location"))

	post, err := env.db.GetPostById(context.Background(), postId)
	require.NoError(t, err)
	assert.Equal(t, "after", post.Content)
}

func TestEditPostByNonAuthorRedirects(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "uid-leo", "leo")
	env.seedUser(t, "uid-mia", "mia")
	postId, err := env.db.CreatePost(context.Background(), &db.CreatePost{
		AuthorId: "uid-leo",
		Content:  "original",
	})
	require.NoError(t, err)

	w := env.postForm(t, "/posts/1/edit", "uid-mia", map[string]string{"content": "hijacked"})

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/1", w.Header().Get("Location"))

	post, err := env.db.GetPostById(context.Background(), postId)
	require.NoError(t, err)
	assert.Equal(t, "original", post.Content)
}

func TestAddComment(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "uid-leo", "leo")
	env.seedUser(t, "uid-mia", "mia")
	postId, err := env.db.CreatePost(context.Background(), &db.CreatePost{
		AuthorId: "uid-leo",
		Content:  "a post",
	})
	require.NoError(t, err)

	w := env.postForm(t, "/posts/1/add_comment", "uid-mia", map[string]string{"content": "nice one"})

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/1", w.Header().Get("Location"))

	comments, err := env.db.GetCommentsForPost(context.Background(), postId)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "uid-mia", comments[0].Author.Id)
	assert.Equal(t, "nice one", comments[0].Content)
}

func TestAddEmptyCommentIsDropped(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "uid-leo", "leo")
	postId, err := env.db.CreatePost(context.Background(), &db.CreatePost{
		AuthorId: "uid-leo",
		Content:  "a post",
	})
	require.NoError(t, err)

	w := env.postForm(t, "/posts/1/add_comment", "uid-leo", map[string]string{"content": ""})

	// the redirect happens whether or not the comment was valid
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/posts/1", w.Header().Get("Location"))

	comments, err := env.db.GetCommentsForPost(context.Background(), postId)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestPostDetail(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "uid-leo", "leo")
	postId, err := env.db.CreatePost(context.Background(), &db.CreatePost{
		AuthorId: "uid-leo",
		Content:  "a post",
	})
	require.NoError(t, err)
	_, err = env.db.CreateComment(context.Background(), &db.CreateComment{
		PostId:   postId,
		AuthorId: "uid-leo",
		Content:  "self reply",
	})
	require.NoError(t, err)

	w := env.get(t, "/posts/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)

	post := data["post"].(map[string]interface{})
	assert.Equal(t, "a post", post["content"])
	comments := data["comments"].([]interface{})
	require.Len(t, comments, 1)
	assert.Contains(t, data, "commentForm")
}

func TestUnknownResourcesReturn404(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "uid-leo", "leo")

	assert.Equal(t, http.StatusNotFound, env.get(t, "/group/no-such-group", "").Code)
	assert.Equal(t, http.StatusNotFound, env.get(t, "/profile/nobody", "").Code)
	assert.Equal(t, http.StatusNotFound, env.get(t, "/posts/99", "").Code)
}

func TestGroupListingIsolation(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "uid-leo", "leo")
	groupId, err := env.db.CreateGroup(context.Background(), &db.CreateGroup{
		Title: "felines",
		Slug:  "felines",
	})
	require.NoError(t, err)
	_, err = env.db.CreatePost(context.Background(), &db.CreatePost{
		AuthorId: "uid-leo",
		Content:  "in the group",
		GroupId:  &groupId,
	})
	require.NoError(t, err)
	_, err = env.db.CreatePost(context.Background(), &db.CreatePost{
		AuthorId: "uid-leo",
		Content:  "ungrouped",
	})
	require.NoError(t, err)

	w := env.get(t, "/group/felines", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)

	page := data["page"].(map[string]interface{})
	posts := page["posts"].([]interface{})
	require.Len(t, posts, 1)
	assert.Equal(t, "in the group", posts[0].(map[string]interface{})["content"])
}

func TestProfileShowsFollowingStatus(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "uid-leo", "leo")
	env.seedUser(t, "uid-mia", "mia")
	_, err := env.db.CreatePost(context.Background(), &db.CreatePost{
		AuthorId: "uid-leo",
		Content:  "a post",
	})
	require.NoError(t, err)

	w := env.get(t, "/profile/leo", "uid-mia")
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, false, data["following"])
	assert.Equal(t, float64(1), data["postsCount"])

	require.Equal(t, http.StatusFound, env.get(t, "/profile/leo/follow", "uid-mia").Code)

	data = decodeData(t, env.get(t, "/profile/leo", "uid-mia"))
	assert.Equal(t, true, data["following"])
}

func (env *testEnv) postMultipart(t *testing.T, uri, asUser, content, imageName string,
	imageBody []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("content", content))
	part, err := writer.CreateFormFile("image", imageName)
	require.NoError(t, err)
	_, err = part.Write(imageBody)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, uri, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if asUser != "" {
		req.Header.Set("Authorization", "Bearer "+asUser)
	}
	return env.do(req)
}
