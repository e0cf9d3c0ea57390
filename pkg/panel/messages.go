package panel

import (
	"github.com/google/uuid"

	"github.com/pluqqy/pluqqy-account/pkg/models"
)

// User-facing notification texts.
const (
	MsgNotSignedIn      = "You must be signed in to change your name"
	MsgNameEmpty        = "Name cannot be empty"
	MsgNameSaved        = "Display name updated"
	MsgNameSaveFailed   = "Failed to save display name"
	MsgDarkEnabled      = "Dark mode enabled"
	MsgLightEnabled     = "Light mode enabled"
	MsgAppearanceFailed = "Failed to update appearance"
	MsgSignedOut        = "Signed out"
	MsgSignOutFailed    = "Failed to sign out"
	MsgLoadFailed       = "Failed to load profile"
	MsgPhotoUpdated     = "Profile photo updated"
)

// ProfileLoadedMsg carries the result of Load. A nil Profile with a nil Err
// means nobody is signed in.
type ProfileLoadedMsg struct {
	Profile *models.UserProfile
	Err     error
}

// PhotoUpdatedMsg is sent by the photo uploader after a successful upload.
type PhotoUpdatedMsg struct {
	UserID uuid.UUID
	URL    string
}

type saveResultMsg struct {
	seq  int
	rev  int
	gen  int
	name string
	err  error
}

type justSavedExpiredMsg struct {
	seq int
}

type toggleResultMsg struct {
	prev bool
	next bool
	gen  int
	err  error
}

type logoutResultMsg struct {
	err error
}
