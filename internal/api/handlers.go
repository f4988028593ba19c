package api

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/kdudkov/eatnow/internal/app"
	"github.com/kdudkov/eatnow/internal/auth"
	"github.com/kdudkov/eatnow/internal/dateselect"
	"github.com/kdudkov/eatnow/pkg/model"
	"github.com/kdudkov/eatnow/pkg/race"
	"github.com/kdudkov/eatnow/pkg/request"
)

type loginRequest struct {
	ID string `json:"id"`
}

type profileUpdate struct {
	Username     *string `json:"username"`
	Description  *string `json:"description"`
	Email        *string `json:"email"`
	Availability *bool   `json:"availability"`
	ShareGPS     *bool   `json:"share_gps"`
	YearOfEntry  *string `json:"year_of_entry"`
	Major        *string `json:"major"`
	Gender       *string `json:"gender"`
	Age          *string `json:"age"`
	College      *string `json:"college"`
}

func (p *profileUpdate) apply(u *model.User) {
	set(&u.Username, p.Username)
	set(&u.Description, p.Description)
	set(&u.Email, p.Email)
	set(&u.Availability, p.Availability)
	set(&u.ShareGPS, p.ShareGPS)
	set(&u.YearOfEntry, p.YearOfEntry)
	set(&u.Major, p.Major)
	set(&u.Gender, p.Gender)
	set(&u.Age, p.Age)
	set(&u.College, p.College)
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

type timeSlotRequest struct {
	Day  string `json:"day"`
	Hour string `json:"hour"`
}

func getLoginHandler(a *app.App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		req := new(loginRequest)

		if err := ctx.BodyParser(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := a.Login(ctx.UserContext(), req.ID); err != nil {
			if errors.Is(err, auth.ErrEmptyID) {
				return err
			}

			// logged in, the profile refresh failed
			return ctx.Status(statusOf(err)).JSON(fiber.Map{"user": a.Users.User(), "error": err.Error()})
		}

		return ctx.JSON(a.Users.User())
	}
}

func getLogoutHandler(a *app.App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := a.Logout(ctx.UserContext()); err != nil {
			return err
		}

		return ctx.SendStatus(fiber.StatusNoContent)
	}
}

func getStatusHandler(a *app.App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"authenticated": a.Auth.IsAuthenticated(),
			"user":          a.Session.ID(),
		})
	}
}

func getMeHandler(a *app.App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(a.Users.User())
	}
}

func getRefreshHandler(a *app.App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := a.Users.GetLatestUserProfile(ctx.UserContext()); err != nil {
			return err
		}

		return ctx.JSON(a.Users.User())
	}
}

func getUpdateMeHandler(a *app.App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		upd := new(profileUpdate)

		if err := ctx.BodyParser(upd); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		a.Users.Update(upd.apply)

		if err := a.Users.UploadUserProfile(ctx.UserContext()); err != nil {
			return err
		}

		return ctx.JSON(a.Users.User())
	}
}

func getLocationHandler(a *app.App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		ack, err := a.Users.UploadLocation(ctx.UserContext())
		if err != nil {
			return err
		}

		u := a.Users.User()

		return ctx.JSON(fiber.Map{"ack": ack, "latitude": u.Latitude, "longitude": u.Longitude})
	}
}

func getUserHandler(a *app.App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		u, err := a.Users.GetUserProfile(ctx.UserContext(), ctx.Params("id"))
		if err != nil {
			return err
		}

		return ctx.JSON(u)
	}
}

func getAvatarHandler(a *app.App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		dat, err := a.Users.Avatar(ctx.UserContext(), ctx.Params("id"))
		if err != nil {
			return err
		}

		ctx.Set(fiber.HeaderContentType, http.DetectContentType(dat))

		return ctx.Send(dat)
	}
}

func getInvitationsHandler(a *app.App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(a.Invitations.State())
	}
}

func getSelectInvitationsHandler(a *app.App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		c, err := model.ParseCategory(ctx.Params("category"))
		if err != nil {
			return err
		}

		if err := a.Invitations.Select(ctx.UserContext(), c); err != nil {
			return err
		}

		return ctx.JSON(a.Invitations.State())
	}
}

func getMoreInvitationsHandler(a *app.App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := a.Invitations.LoadMore(ctx.UserContext()); err != nil {
			return err
		}

		return ctx.JSON(a.Invitations.State())
	}
}

func getTimeSlotHandler(a *app.App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		slot, err := a.TimeSlot.Current(ctx.UserContext())
		if err != nil {
			return err
		}

		if slot == nil {
			return ctx.SendStatus(fiber.StatusNoContent)
		}

		return ctx.JSON(slot)
	}
}

func getSetTimeSlotHandler(a *app.App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		req := new(timeSlotRequest)

		if err := ctx.BodyParser(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if req.Day != "" {
			if err := a.TimeSlot.SetDay(req.Day); err != nil {
				return err
			}
		}

		if req.Hour != "" {
			if err := a.TimeSlot.SetHour(req.Hour); err != nil {
				return err
			}
		}

		slot, err := a.TimeSlot.Confirm(ctx.UserContext())
		if err != nil {
			return err
		}

		return ctx.JSON(slot)
	}
}

func getMessagesHandler(a *app.App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(a.Messages.Messages())
	}
}

func statusOf(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}

	switch {
	case errors.Is(err, race.ErrTimeout):
		return fiber.StatusGatewayTimeout
	case errors.Is(err, dateselect.ErrPastTime),
		errors.Is(err, dateselect.ErrInvalidHour),
		errors.Is(err, dateselect.ErrInvalidDay),
		errors.Is(err, model.ErrUnknownCategory),
		errors.Is(err, auth.ErrEmptyID):
		return fiber.StatusBadRequest
	}

	var se *request.StatusError
	if errors.As(err, &se) {
		if se.Code == http.StatusNotFound {
			return fiber.StatusNotFound
		}

		return fiber.StatusBadGateway
	}

	return fiber.StatusInternalServerError
}
