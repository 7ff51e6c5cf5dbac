package routes

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yatube/yatube-be/app"
	"github.com/yatube/yatube-be/controllers"
	"github.com/yatube/yatube-be/db"
	"github.com/yatube/yatube-be/middleware"
	"github.com/yatube/yatube-be/model"
	"github.com/yatube/yatube-be/services"
	"github.com/yatube/yatube-be/util"
)

type postRoutes struct {
	db     db.Database
	bucket services.BlobStore
	groups *controllers.GroupController
}

func AddPostRoutes(group *gin.RouterGroup, database db.Database, authClient middleware.TokenVerifier,
	bucket services.BlobStore, groupController *controllers.GroupController,
	pageCache services.PageCache, pageCacheTTL time.Duration) {
	routes := &postRoutes{db: database, bucket: bucket, groups: groupController}

	optionalAuth := middleware.Auth(database, authClient, &middleware.AuthConfig{SessionOptional: true})
	loginRequired := middleware.Auth(database, authClient, &middleware.AuthConfig{RedirectToLogin: true})

	group.GET("/",
		middleware.CachePage(pageCache, pageCacheTTL),
		util.HandlerWrapper(routes.index, &util.HandlerOpts{}))
	group.GET("/group/:slug", util.HandlerWrapper(routes.groupPosts, &util.HandlerOpts{}))
	group.GET("/profile/:username", optionalAuth,
		util.HandlerWrapper(routes.profile, &util.HandlerOpts{}))
	group.GET("/posts/:id", util.HandlerWrapper(routes.postDetail, &util.HandlerOpts{}))

	group.GET("/create", loginRequired, util.HandlerWrapper(routes.createPostForm, &util.HandlerOpts{}))
	group.POST("/create", loginRequired, util.HandlerWrapper(routes.createPost, &util.HandlerOpts{}))
	group.GET("/posts/:id/edit", loginRequired, util.HandlerWrapper(routes.editPostForm, &util.HandlerOpts{}))
	group.POST("/posts/:id/edit", loginRequired, util.HandlerWrapper(routes.editPost, &util.HandlerOpts{}))
	group.POST("/posts/:id/add_comment", loginRequired,
		util.HandlerWrapper(routes.addComment, &util.HandlerOpts{}))
}

func (pr *postRoutes) index(c *gin.Context) (interface{}, *util.HTTPError) {
	page, err := app.PaginatePosts(c.Request.Context(), pr.db, &db.PostsListQuery{}, c.Query("page"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return page, nil
}

func (pr *postRoutes) groupPosts(c *gin.Context) (interface{}, *util.HTTPError) {
	group, err := pr.db.GetGroupBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if group == nil {
		return nil, util.BuildNotFoundHTTPErr("group")
	}
	page, err := app.PaginatePosts(c.Request.Context(), pr.db,
		&db.PostsListQuery{GroupId: &group.Id}, c.Query("page"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{
		"group": group,
		"page":  page,
	}, nil
}

func (pr *postRoutes) profile(c *gin.Context) (interface{}, *util.HTTPError) {
	author, err := pr.db.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if author == nil {
		return nil, util.BuildNotFoundHTTPErr("author")
	}
	page, err := app.PaginatePosts(c.Request.Context(), pr.db,
		&db.PostsListQuery{AuthorId: author.Id}, c.Query("page"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	following := false
	if viewer := middleware.GetUserMaybe(c); viewer != nil {
		following, err = pr.db.IsFollowing(c.Request.Context(), viewer.Id, author.Id)
		if err != nil {
			return nil, util.BuildDbHTTPErr(err)
		}
	}
	return gin.H{
		"author":     author,
		"page":       page,
		"postsCount": page.Count,
		"following":  following,
	}, nil
}

func (pr *postRoutes) postDetail(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	post, err := pr.db.GetPostById(c.Request.Context(), id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if post == nil {
		return nil, util.BuildNotFoundHTTPErr("post")
	}
	comments, err := pr.db.GetCommentsForPost(c.Request.Context(), id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if comments == nil {
		comments = []*model.Comment{}
	}
	return gin.H{
		"post":     post,
		"comments": comments,
		"commentForm": gin.H{
			"content": "",
		},
	}, nil
}

func (pr *postRoutes) createPostForm(c *gin.Context) (interface{}, *util.HTTPError) {
	return gin.H{
		"groups": pr.groups.Groups(),
		"form": gin.H{
			"content": "",
			"group":   nil,
		},
	}, nil
}

func (pr *postRoutes) createPost(c *gin.Context) (interface{}, *util.HTTPError) {
	user := middleware.MustGetUser(c)
	content, groupId, image, httpErr := pr.postFromForm(c)
	if httpErr != nil {
		return nil, httpErr
	}

	blobName, httpErr := pr.uploadImage(c, image)
	if httpErr != nil {
		return nil, httpErr
	}
	if _, err := pr.db.CreatePost(c.Request.Context(), &db.CreatePost{
		AuthorId:      user.Id,
		Content:       content,
		GroupId:       groupId,
		ImageBlobName: blobName,
	}); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}

	c.Redirect(http.StatusFound, "/profile/"+user.Username)
	return nil, nil
}

func (pr *postRoutes) editPostForm(c *gin.Context) (interface{}, *util.HTTPError) {
	post, httpErr := pr.postForEdit(c)
	if httpErr != nil || post == nil {
		return nil, httpErr
	}
	var groupId interface{}
	if post.Group != nil {
		groupId = post.Group.Id
	}
	return gin.H{
		"groups": pr.groups.Groups(),
		"form": gin.H{
			"content": post.Content,
			"group":   groupId,
		},
		"post": post,
	}, nil
}

func (pr *postRoutes) editPost(c *gin.Context) (interface{}, *util.HTTPError) {
	post, httpErr := pr.postForEdit(c)
	if httpErr != nil || post == nil {
		return nil, httpErr
	}
	content, groupId, image, httpErr := pr.postFromForm(c)
	if httpErr != nil {
		return nil, httpErr
	}

	blobName := ""
	if image != nil {
		blobName, httpErr = pr.uploadImage(c, image)
		if httpErr != nil {
			return nil, httpErr
		}
	}
	if err := pr.db.UpdatePost(c.Request.Context(), post.Id, &db.UpdatePost{
		Content:       content,
		GroupId:       groupId,
		ImageBlobName: blobName,
	}); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}

	c.Redirect(http.StatusFound, "/posts/"+strconv.FormatInt(post.Id, 10))
	return nil, nil
}

func (pr *postRoutes) addComment(c *gin.Context) (interface{}, *util.HTTPError) {
	user := middleware.MustGetUser(c)
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	post, err := pr.db.GetPostById(c.Request.Context(), id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if post == nil {
		return nil, util.BuildNotFoundHTTPErr("post")
	}

	// Invalid comments are dropped without an error. The post page is the
	// destination either way.
	content := util.XSSSanitize(c.PostForm("content"))
	if content != "" {
		if _, err := pr.db.CreateComment(c.Request.Context(), &db.CreateComment{
			PostId:   post.Id,
			AuthorId: user.Id,
			Content:  content,
		}); err != nil {
			return nil, util.BuildDbHTTPErr(err)
		}
	}

	c.Redirect(http.StatusFound, "/posts/"+strconv.FormatInt(post.Id, 10))
	return nil, nil
}

// postForEdit loads the post and enforces that the caller authored it. A
// non-author is redirected to the post page; (nil, nil) signals the redirect
// was already written.
func (pr *postRoutes) postForEdit(c *gin.Context) (*model.Post, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	post, err := pr.db.GetPostById(c.Request.Context(), id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if post == nil {
		return nil, util.BuildNotFoundHTTPErr("post")
	}
	if post.Author.Id != middleware.MustGetUser(c).Id {
		// only the author may edit; everyone else lands back on the post
		c.Redirect(http.StatusFound, "/posts/"+strconv.FormatInt(post.Id, 10))
		return nil, nil
	}
	return post, nil
}

// postFromForm validates the shared create/edit form fields.
func (pr *postRoutes) postFromForm(c *gin.Context) (string, *int64, *multipart.FileHeader, *util.HTTPError) {
	fields := make(map[string]string)

	content := util.XSSSanitize(c.PostForm("content"))
	if content == "" {
		fields["content"] = "this field is required"
	}

	var groupId *int64
	if rawGroup := c.PostForm("group"); rawGroup != "" {
		id, err := strconv.ParseInt(rawGroup, 10, 64)
		if err != nil {
			fields["group"] = "select a valid group"
		} else {
			group := false
			for _, g := range pr.groups.Groups() {
				if g.Id == id {
					group = true
					break
				}
			}
			if !group {
				fields["group"] = "select a valid group"
			} else {
				groupId = &id
			}
		}
	}

	image, err := c.FormFile("image")
	if err != nil {
		// no image attached
		image = nil
	} else if image.Size == 0 {
		fields["image"] = "the submitted file is empty"
	}

	if len(fields) > 0 {
		return "", nil, nil, util.BuildValidationHTTPErr(fields)
	}
	return content, groupId, image, nil
}

func (pr *postRoutes) uploadImage(c *gin.Context, image *multipart.FileHeader) (string, *util.HTTPError) {
	if image == nil {
		return "", nil
	}
	file, err := image.Open()
	if err != nil {
		return "", &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "could not read the uploaded file",
		}
	}
	defer file.Close()

	blobName := "posts/" + uuid.NewString() + filepath.Ext(image.Filename)
	if err := pr.bucket.Upload(c.Request.Context(), blobName,
		image.Header.Get("Content-Type"), file); err != nil {
		return "", &util.HTTPError{
			Status:  http.StatusInternalServerError,
			Message: "failed to store the uploaded file",
		}
	}
	return blobName, nil
}
