package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haiderzaidi/allaboutme/internal/server/users"
)

type profileUpdateRequest struct {
	FullName     *string `json:"fullName"`
	Bio          *string `json:"bio"`
	Location     *string `json:"location"`
	BirthDate    *string `json:"birthDate"`
	Interests    *string `json:"interests"`
	ProfileImage *string `json:"profileImage"`
	BannerImage  *string `json:"bannerImage"`
}

type passwordChangeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Server) handleGetProfile(c *gin.Context) {
	claims := requesterClaims(c)

	user, err := s.users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (s *Server) handleUpdateProfile(c *gin.Context) {
	claims := requesterClaims(c)

	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	patch := users.ProfilePatch{
		FullName:     req.FullName,
		Bio:          req.Bio,
		Location:     req.Location,
		BirthDate:    req.BirthDate,
		Interests:    req.Interests,
		ProfileImage: req.ProfileImage,
		BannerImage:  req.BannerImage,
	}

	user, err := s.users.UpdateProfile(c.Request.Context(), claims.UserID, patch)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func (s *Server) handleChangePassword(c *gin.Context) {
	claims := requesterClaims(c)

	var req passwordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "current and new password are required"})
		return
	}

	// the bearer token alone is not enough to rotate a password; the
	// current one must be presented again
	if _, err := s.users.Authenticate(c.Request.Context(), claims.Email, req.CurrentPassword); err != nil {
		s.respondError(c, err)
		return
	}

	if err := s.users.ChangePassword(c.Request.Context(), claims.UserID, req.NewPassword); err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated successfully!"})
}

func (s *Server) handleDeleteUser(c *gin.Context) {
	claims := requesterClaims(c)

	if err := s.users.Delete(c.Request.Context(), claims.UserID); err != nil {
		s.respondError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "account deleted", "userId", claims.UserID)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Account deleted"})
}
