package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"

	"github.com/yatube/yatube-be/db"
	"github.com/yatube/yatube-be/middleware"
	"github.com/yatube/yatube-be/model"
	"github.com/yatube/yatube-be/util"
)

type userRoutes struct {
	db db.Database
}

func AddUserRoutes(group *gin.RouterGroup, database db.Database, authClient middleware.TokenVerifier) {
	routes := &userRoutes{db: database}

	group.PUT("/users",
		middleware.Auth(database, authClient, &middleware.AuthConfig{AccountOptional: true}),
		util.HandlerWrapper(routes.createUser, &util.HandlerOpts{}))
}

type createUserReq struct {
	Username string `json:"username"`
}

func (ur *userRoutes) createUser(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createUserReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if req.Username == "" {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "username is required",
		}
	}

	user := &model.User{
		Id:       middleware.MustGetToken(c).UID,
		Username: req.Username,
		Avatar:   util.Avatar(req.Username),
	}
	if err := ur.db.CreateUser(c.Request.Context(), user); err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && db.IsDupKeyErr(mysqlErr) {
			return nil, &util.HTTPError{
				Status:  http.StatusConflict,
				Message: "username already taken",
			}
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	return user, nil
}
