package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	profileUC "github.com/khoahotran/profile-service/internal/application/usecase/profile"
	"github.com/khoahotran/profile-service/pkg/logger"
)

type ProfileHandler struct {
	createProfileUC *profileUC.CreateProfileUseCase
	getProfileUC    *profileUC.GetProfileUseCase
	listProfilesUC  *profileUC.ListProfilesUseCase
	updateProfileUC *profileUC.UpdateProfileUseCase
	logger          logger.Logger
}

func NewProfileHandler(
	createUC *profileUC.CreateProfileUseCase,
	getUC *profileUC.GetProfileUseCase,
	listUC *profileUC.ListProfilesUseCase,
	updateUC *profileUC.UpdateProfileUseCase,
	log logger.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		createProfileUC: createUC,
		getProfileUC:    getUC,
		listProfilesUC:  listUC,
		updateProfileUC: updateUC,
		logger:          log,
	}
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	payload, err := bindDocument(c, "Validation failed")
	if err != nil {
		c.Error(err)
		return
	}

	output, err := h.createProfileUC.Execute(c.Request.Context(), profileUC.CreateProfileInput{Payload: payload})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, Response{
		Status:  StatusSuccess,
		Message: "Profile created successfully",
		Data:    ToProfileDTO(output.Profile),
	})
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	output, err := h.getProfileUC.Execute(c.Request.Context(), profileUC.GetProfileInput{ID: c.Param("id")})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, Response{Status: StatusSuccess, Data: ToProfileDTO(output.Profile)})
}

func (h *ProfileHandler) ListProfiles(c *gin.Context) {
	output, err := h.listProfilesUC.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Status: StatusSuccess,
		Count:  len(output.Profiles),
		Data:   ToProfileDTOs(output.Profiles),
	})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	payload, err := bindDocument(c, "Validation failed")
	if err != nil {
		c.Error(err)
		return
	}

	input := profileUC.UpdateProfileInput{ID: c.Param("id"), Payload: payload}
	output, err := h.updateProfileUC.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Status:        StatusSuccess,
		Message:       "Profile updated successfully",
		UpdatedFields: output.UpdatedFields,
		Data:          ToProfileDTO(output.Profile),
	})
}
