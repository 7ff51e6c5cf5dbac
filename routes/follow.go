package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"

	"github.com/yatube/yatube-be/app"
	"github.com/yatube/yatube-be/db"
	"github.com/yatube/yatube-be/middleware"
	"github.com/yatube/yatube-be/model"
	"github.com/yatube/yatube-be/util"
)

type followRoutes struct {
	db db.Database
}

func AddFollowRoutes(group *gin.RouterGroup, database db.Database, authClient middleware.TokenVerifier) {
	routes := &followRoutes{db: database}
	loginRequired := middleware.Auth(database, authClient, &middleware.AuthConfig{RedirectToLogin: true})

	group.GET("/follow", loginRequired, util.HandlerWrapper(routes.feed, &util.HandlerOpts{}))
	group.GET("/profile/:username/follow", loginRequired,
		util.HandlerWrapper(routes.follow, &util.HandlerOpts{}))
	group.GET("/profile/:username/unfollow", loginRequired,
		util.HandlerWrapper(routes.unfollow, &util.HandlerOpts{}))
}

func (fr *followRoutes) feed(c *gin.Context) (interface{}, *util.HTTPError) {
	page, err := app.FeedForUser(c.Request.Context(), fr.db, middleware.MustGetUser(c), c.Query("page"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return page, nil
}

func (fr *followRoutes) follow(c *gin.Context) (interface{}, *util.HTTPError) {
	user := middleware.MustGetUser(c)
	author, httpErr := fr.author(c)
	if httpErr != nil {
		return nil, httpErr
	}

	// following yourself is a no-op, as is a repeated follow
	if author.Id != user.Id {
		err := fr.db.CreateFollow(c.Request.Context(), &model.Follow{
			UserId:   user.Id,
			AuthorId: author.Id,
		})
		if err != nil {
			var mysqlErr *mysql.MySQLError
			if !errors.As(err, &mysqlErr) || !db.IsDupKeyErr(mysqlErr) {
				return nil, util.BuildDbHTTPErr(err)
			}
		}
	}

	c.Redirect(http.StatusFound, "/profile/"+author.Username)
	return nil, nil
}

func (fr *followRoutes) unfollow(c *gin.Context) (interface{}, *util.HTTPError) {
	user := middleware.MustGetUser(c)
	author, httpErr := fr.author(c)
	if httpErr != nil {
		return nil, httpErr
	}

	deleted, err := fr.db.DeleteFollow(c.Request.Context(), &model.Follow{
		UserId:   user.Id,
		AuthorId: author.Id,
	})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if !deleted {
		return nil, &util.HTTPError{
			Status:  http.StatusNotFound,
			Message: "you do not follow this author",
		}
	}

	c.Redirect(http.StatusFound, "/profile/"+author.Username)
	return nil, nil
}

func (fr *followRoutes) author(c *gin.Context) (*model.User, *util.HTTPError) {
	author, err := fr.db.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if author == nil {
		return nil, util.BuildNotFoundHTTPErr("author")
	}
	return author, nil
}
