package assets

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gorilla/mux"

	"github.com/Vasu1712/scenecast/internal/api/respond"
	"github.com/Vasu1712/scenecast/internal/catalog"
	"github.com/Vasu1712/scenecast/internal/logger"
	"github.com/Vasu1712/scenecast/internal/models"
)

const (
	imageUploadLimit = 8 << 20
	trackUploadLimit = 64 << 20
	formOverhead     = 1 << 20

	characterColor  = "#1e293b"
	backgroundColor = "#0f172a"
)

// AssetHandler accepts uploads and deletions of characters, backgrounds and
// tracks. Files live under UploadsDir and are served from /uploads/.
type AssetHandler struct {
	Store      *catalog.Store
	UploadsDir string
	Log        *logger.Logger
}

type upload struct {
	file     multipart.File
	header   *multipart.FileHeader
	mimeType string
	name     string
	campaign string
}

func isImage(mime string) bool { return strings.HasPrefix(mime, "image/") }

func isAudio(mime string) bool { return strings.HasPrefix(mime, "audio/") }

func isVideo(mime string) bool {
	switch mime {
	case "video/mp4", "video/mpeg", "video/quicktime":
		return true
	}
	return false
}

func isTrack(mime string) bool { return isAudio(mime) || isVideo(mime) }

// sniff prefers the MIME type detected from content and falls back to the one
// the client declared.
func sniff(file multipart.File, declared string, accept func(string) bool) (string, bool) {
	detected, err := mimetype.DetectReader(file)
	if _, seekErr := file.Seek(0, io.SeekStart); seekErr != nil {
		return "", false
	}
	if err == nil {
		if m := strings.ToLower(strings.SplitN(detected.String(), ";", 2)[0]); accept(m) {
			return m, true
		}
	}
	declared = strings.ToLower(strings.TrimSpace(strings.SplitN(declared, ";", 2)[0]))
	if accept(declared) {
		return declared, true
	}
	return "", false
}

// readUpload parses the multipart form and validates the file field. On error
// it has already written the response.
func (h *AssetHandler) readUpload(w http.ResponseWriter, r *http.Request, field string, limit int64, accept func(string) bool, typeErr string) (*upload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, limit+formOverhead)
	if err := r.ParseMultipartForm(formOverhead); err != nil {
		respond.Error(w, http.StatusBadRequest, "upload too large or malformed")
		return nil, false
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "no file was uploaded")
		return nil, false
	}
	if header.Size > limit {
		file.Close()
		respond.Error(w, http.StatusBadRequest, "file too large")
		return nil, false
	}
	mime, ok := sniff(file, header.Header.Get("Content-Type"), accept)
	if !ok {
		file.Close()
		respond.Error(w, http.StatusBadRequest, typeErr)
		return nil, false
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		name = header.Filename
	}
	return &upload{
		file:     file,
		header:   header,
		mimeType: mime,
		name:     catalog.DecodeUploadText(name),
		campaign: strings.TrimSpace(r.FormValue("campaignId")),
	}, true
}

// save writes the upload under UploadsDir/subdir and returns its public path.
func (h *AssetHandler) save(u *upload, subdir string) (string, error) {
	defer u.file.Close()

	dir := filepath.Join(h.UploadsDir, filepath.FromSlash(subdir))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	fileName := catalog.NewFileName(u.header.Filename, time.Now())
	dst, err := os.Create(filepath.Join(dir, fileName))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, u.file); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return path.Join("/uploads", subdir, fileName), nil
}

// UploadCharacter handles POST /api/assets/characters.
func (h *AssetHandler) UploadCharacter(w http.ResponseWriter, r *http.Request) {
	u, ok := h.readUpload(w, r, "image", imageUploadLimit, isImage, "only image files are allowed")
	if !ok {
		return
	}
	if !h.knownCampaign(w, u) {
		return
	}
	publicPath, err := h.save(u, "characters")
	if err != nil {
		h.serverError(w, err)
		return
	}
	character, err := h.Store.AddCharacter(r.Context(), models.Character{
		Name:       u.name,
		Color:      characterColor,
		Image:      publicPath,
		CampaignID: u.campaign,
	})
	if err != nil {
		h.removeFiles(publicPath)
		h.storeError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]models.Character{"character": character})
}

// UploadBackground handles POST /api/assets/backgrounds.
func (h *AssetHandler) UploadBackground(w http.ResponseWriter, r *http.Request) {
	u, ok := h.readUpload(w, r, "image", imageUploadLimit, isImage, "only image files are allowed")
	if !ok {
		return
	}
	if !h.knownCampaign(w, u) {
		return
	}
	publicPath, err := h.save(u, "backgrounds")
	if err != nil {
		h.serverError(w, err)
		return
	}
	background, err := h.Store.AddBackground(r.Context(), models.Background{
		Name:       u.name,
		Background: fmt.Sprintf("%s url(%q) center / cover no-repeat", backgroundColor, publicPath),
		Image:      publicPath,
		CampaignID: u.campaign,
	})
	if err != nil {
		h.removeFiles(publicPath)
		h.storeError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]models.Background{"background": background})
}

// UploadTrack handles POST /api/assets/tracks. Audio and video land in
// separate directories, which is also what later classifies them.
func (h *AssetHandler) UploadTrack(w http.ResponseWriter, r *http.Request) {
	u, ok := h.readUpload(w, r, "file", trackUploadLimit, isTrack, "only audio files or MP4/MPEG/QuickTime video are allowed")
	if !ok {
		return
	}
	if !h.knownCampaign(w, u) {
		return
	}
	kind := models.TrackKindAudio
	if isVideo(u.mimeType) {
		kind = models.TrackKindVideo
	}
	publicPath, err := h.save(u, path.Join("tracks", string(kind)))
	if err != nil {
		h.serverError(w, err)
		return
	}
	track, err := h.Store.AddTrack(r.Context(), models.Track{
		Name:       u.name,
		File:       publicPath,
		MimeType:   u.mimeType,
		Storage:    kind,
		CampaignID: u.campaign,
	})
	if err != nil {
		h.removeFiles(publicPath)
		h.storeError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]models.Track{"track": track})
}

// Delete returns a handler for DELETE /api/assets/<kind>/{id}.
func (h *AssetHandler) Delete(kind catalog.AssetKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		if id == "" {
			respond.Error(w, http.StatusBadRequest, "missing asset id")
			return
		}
		files, err := h.Store.DeleteAsset(r.Context(), kind, id)
		if err != nil {
			h.storeError(w, err)
			return
		}
		h.removeFiles(files...)
		respond.JSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// ListCustom handles GET /api/assets/custom.
func (h *AssetHandler) ListCustom(w http.ResponseWriter, r *http.Request) {
	lib := h.Store.Current().Library()
	audio, video := catalog.SplitTracks(lib.Tracks)
	respond.JSON(w, http.StatusOK, map[string]any{
		"backgrounds": lib.Backgrounds,
		"characters":  lib.Characters,
		"tracks":      lib.Tracks,
		"campaigns":   lib.Campaigns,
		"audioTracks": audio,
		"videoTracks": video,
	})
}

func (h *AssetHandler) knownCampaign(w http.ResponseWriter, u *upload) bool {
	if _, ok := h.Store.Current().Campaign(u.campaign); !ok {
		u.file.Close()
		respond.Error(w, http.StatusBadRequest, "select a valid campaign first")
		return false
	}
	return true
}

// uploadPath maps a public /uploads/... path to a file inside UploadsDir, or
// returns false if it points anywhere else.
func (h *AssetHandler) uploadPath(publicPath string) (string, bool) {
	rel, ok := strings.CutPrefix(path.Clean("/"+publicPath), "/uploads/")
	if !ok || rel == "" {
		return "", false
	}
	full := filepath.Join(h.UploadsDir, filepath.FromSlash(rel))
	within, err := filepath.Rel(h.UploadsDir, full)
	if err != nil || within == ".." || strings.HasPrefix(within, ".."+string(filepath.Separator)) || filepath.IsAbs(within) {
		return "", false
	}
	return full, true
}

func (h *AssetHandler) removeFiles(publicPaths ...string) {
	for _, p := range publicPaths {
		full, ok := h.uploadPath(p)
		if !ok {
			continue
		}
		if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
			h.Log.Warn("remove upload", "path", p, "error", err)
		}
	}
}

func (h *AssetHandler) storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "asset not found")
	case errors.Is(err, catalog.ErrNotDeletable):
		respond.Error(w, http.StatusBadRequest, "this asset cannot be deleted")
	case errors.Is(err, catalog.ErrInvalidCampaign):
		respond.Error(w, http.StatusBadRequest, "select a valid campaign first")
	default:
		h.serverError(w, err)
	}
}

func (h *AssetHandler) serverError(w http.ResponseWriter, err error) {
	h.Log.Error("asset request failed", "error", err)
	respond.Error(w, http.StatusInternalServerError, "internal error")
}
