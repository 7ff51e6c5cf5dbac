package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yatube/yatube-be/controllers"
	"github.com/yatube/yatube-be/db"
	"github.com/yatube/yatube-be/middleware"
	"github.com/yatube/yatube-be/util"
)

type groupRoutes struct {
	controller *controllers.GroupController
}

func AddGroupRoutes(group *gin.RouterGroup, database db.Database, authClient middleware.TokenVerifier,
	controller *controllers.GroupController) {
	routes := &groupRoutes{controller: controller}

	group.GET("/groups", util.HandlerWrapper(routes.getGroups, &util.HandlerOpts{}))
	group.PUT("/groups",
		middleware.Auth(database, authClient, &middleware.AuthConfig{}),
		util.HandlerWrapper(routes.createGroup, &util.HandlerOpts{}))
}

func (gr *groupRoutes) getGroups(c *gin.Context) (interface{}, *util.HTTPError) {
	return gr.controller.Groups(), nil
}

type createGroupReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (gr *groupRoutes) createGroup(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createGroupReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if len(req.Title) <= 5 {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "group title must be more than 5 characters",
		}
	}

	id, httpErr := gr.controller.CreateGroup(c.Request.Context(), &db.CreateGroup{
		Title:       util.XSSSanitize(req.Title),
		Slug:        util.Slugify(req.Title),
		Description: util.XSSSanitize(req.Description),
	})
	if httpErr != nil {
		return nil, httpErr
	}
	return gin.H{"id": id}, nil
}
