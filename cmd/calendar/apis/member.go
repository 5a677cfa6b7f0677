package apis

import (
	"calendar-backend/cmd/calendar/model"
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type IMemberService interface {
	AddMember(ctx context.Context, ownerID, eventID, userID string) (model.EventMember, error)
	ListMembers(ctx context.Context, ownerID, eventID string) ([]model.EventMember, error)
	RemoveMember(ctx context.Context, ownerID, memberID string) error
}

type MemberAPI struct {
	members IMemberService
	log     *zap.Logger
}

func NewMemberAPI(members IMemberService, log *zap.Logger) *MemberAPI {

	return &MemberAPI{
		members: members,
		log:     log,
	}
}

func (a *MemberAPI) Setup(g *echo.Group) {
	g.GET("/events/:id/members", a.listMembers)
	g.POST("/events/:id/members", a.addMember)
	g.DELETE("/members/:id", a.removeMember)
}

func (a *MemberAPI) listMembers(c echo.Context) error {

	ctx := c.Request().Context()

	members, err := a.members.ListMembers(ctx, ownerID(c), c.Param("id"))
	if err != nil {
		return errorResponse(c, a.log, err)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
			Data:    members,
		},
	)
}

func (a *MemberAPI) addMember(c echo.Context) error {

	ctx := c.Request().Context()

	var req model.MemberRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err)
	}

	member, err := a.members.AddMember(ctx, ownerID(c), c.Param("id"), req.UserID)
	if err != nil {
		return errorResponse(c, a.log, err)
	}

	return c.JSON(
		http.StatusCreated,
		model.BaseResponse{
			Message: "success",
			Data:    member,
		},
	)
}

func (a *MemberAPI) removeMember(c echo.Context) error {

	ctx := c.Request().Context()

	err := a.members.RemoveMember(ctx, ownerID(c), c.Param("id"))
	if err != nil {
		return errorResponse(c, a.log, err)
	}

	return c.JSON(
		http.StatusOK,
		model.BaseResponse{
			Message: "success",
		},
	)
}
