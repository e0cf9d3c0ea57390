package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pluqqy/pluqqy-account/pkg/models"
	"github.com/pluqqy/pluqqy-account/pkg/panel"
	"github.com/pluqqy/pluqqy-account/pkg/photo"
)

const (
	msgPhotoFailed       = "Failed to upload photo"
	msgPhotoUnavailable  = "Photo uploads are not configured"
	msgPhotoNotSignedIn  = "You must be signed in to change your photo"
	msgPhotoWrongType    = "Choose a png, jpg, gif or webp image"
	photoPickerMinHeight = 5
)

// Uploader stores a photo and records it on the profile.
type Uploader interface {
	Upload(ctx context.Context, userID uuid.UUID, path string) (string, error)
}

type photoUploadResultMsg struct {
	userID uuid.UUID
	url    string
	err    error
}

// PhotoUploaderModel picks an image with a file picker, confirms, and
// uploads it. A successful upload is reported as panel.PhotoUpdatedMsg.
type PhotoUploaderModel struct {
	uploader Uploader
	notifier panel.Notifier
	log      *zap.Logger

	picker    filepicker.Model
	confirm   *ConfirmationModel
	props     panel.PhotoProps
	startDir  string
	active    bool
	uploading bool
	height    int
}

// NewPhotoUploaderModel creates the uploader. A nil uploader disables uploads.
func NewPhotoUploaderModel(uploader Uploader, notifier panel.Notifier, log *zap.Logger) *PhotoUploaderModel {
	if log == nil {
		log = zap.NewNop()
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		dir = "."
	}
	return &PhotoUploaderModel{
		uploader: uploader,
		notifier: notifier,
		log:      log,
		confirm:  NewConfirmation(),
		startDir: dir,
		height:   12,
	}
}

// Open shows the picker for the user in props.
func (m *PhotoUploaderModel) Open(props panel.PhotoProps) tea.Cmd {
	if m.uploader == nil {
		m.notifier.Error(msgPhotoUnavailable)
		return nil
	}
	if props.UserID == uuid.Nil {
		m.notifier.Error(msgPhotoNotSignedIn)
		return nil
	}

	fp := filepicker.New()
	fp.CurrentDirectory = m.startDir
	fp.AllowedTypes = photo.Extensions()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.AutoHeight = false
	fp.Height = m.height

	m.picker = fp
	m.props = props
	m.active = true
	return m.picker.Init()
}

func (m *PhotoUploaderModel) Active() bool    { return m.active }
func (m *PhotoUploaderModel) Uploading() bool { return m.uploading }

func (m *PhotoUploaderModel) SetSize(width, height int) {
	h := height - 16
	if h < photoPickerMinHeight {
		h = photoPickerMinHeight
	}
	m.height = h
	m.picker.Height = h
}

func (m *PhotoUploaderModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case photoUploadResultMsg:
		return m.handleResult(msg)

	case tea.KeyMsg:
		if !m.active {
			return nil
		}
		if m.confirm.Active() {
			return m.confirm.Update(msg)
		}
		if m.uploading {
			return nil
		}
		if msg.String() == "esc" {
			m.active = false
			return nil
		}
	}

	if !m.active {
		return nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.confirm.ShowDialog(
			"Upload photo",
			fmt.Sprintf("Use %s as your profile photo?", filepath.Base(path)),
			"",
			false,
			44,
			func() tea.Cmd { return m.upload(path) },
			nil,
		)
	}
	if ok, _ := m.picker.DidSelectDisabledFile(msg); ok {
		m.notifier.Error(msgPhotoWrongType)
	}

	return cmd
}

func (m *PhotoUploaderModel) upload(path string) tea.Cmd {
	m.uploading = true

	uploader := m.uploader
	userID := m.props.UserID
	return func() tea.Msg {
		url, err := uploader.Upload(context.Background(), userID, path)
		return photoUploadResultMsg{userID: userID, url: url, err: err}
	}
}

func (m *PhotoUploaderModel) handleResult(msg photoUploadResultMsg) tea.Cmd {
	m.uploading = false

	if msg.err != nil {
		m.log.Error("failed to upload photo",
			zap.String("user_id", msg.userID.String()),
			zap.Error(msg.err),
		)
		var verr *models.ValidationError
		if errors.As(msg.err, &verr) && len(verr.Errors) > 0 {
			m.notifier.Error("Photo " + verr.Errors[0].Message)
		} else {
			m.notifier.Error(msgPhotoFailed)
		}
		return nil
	}

	m.active = false
	m.notifier.Success(panel.MsgPhotoUpdated)

	updated := panel.PhotoUpdatedMsg{UserID: msg.userID, URL: msg.url}
	return func() tea.Msg { return updated }
}

// Summary is the one-line photo status shown in the settings panel.
func (m *PhotoUploaderModel) Summary(props panel.PhotoProps) string {
	switch {
	case m.uploading:
		return DescriptionStyle.Render("Uploading...")
	case m.uploader == nil:
		return DescriptionStyle.Render("Uploads unavailable")
	case props.PhotoURL == "":
		return DescriptionStyle.Render("No photo") + "  " + HelpStyle.Render("enter to upload")
	default:
		name := props.PhotoURL
		if i := strings.LastIndex(name, "/"); i >= 0 {
			name = name[i+1:]
		}
		return NormalStyle.Render(name) + "  " + HelpStyle.Render("enter to change")
	}
}

func (m *PhotoUploaderModel) View() string {
	if m.confirm.Active() {
		return m.confirm.View()
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Choose a profile photo"))
	b.WriteString("\n")
	b.WriteString(DescriptionStyle.Render(m.picker.CurrentDirectory))
	b.WriteString("\n\n")
	b.WriteString(m.picker.View())
	b.WriteString("\n")
	if m.uploading {
		b.WriteString(DescriptionStyle.Render("Uploading..."))
	} else {
		b.WriteString(HelpStyle.Render("enter select • ← back • esc cancel"))
	}
	return b.String()
}
