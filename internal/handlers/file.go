package handlers

import (
	"errors"
	"path"
	"strconv"
	"strings"

	"prodtrack/internal/access"
	"prodtrack/internal/apperr"
	"prodtrack/internal/database"
	"prodtrack/internal/models"
	"prodtrack/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultFileType = "generic"

type registerFileReq struct {
	FileID            string `json:"file_id"`
	OriginalFilename  string `json:"original_filename"`
	RelativePath      string `json:"relative_path"`
	FileFormat        string `json:"file_format"`
	FileType          string `json:"file_type"`
	StorageLocationID uint   `json:"storage_location_id"`
	ShotID            *uint  `json:"shot_id"`
	AssetID           *uint  `json:"asset_id"`
}

// POST /projects/:id/files
// Registers a file already placed on a storage location. file_id is
// generated when absent.
func (h *Handler) RegisterFile(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	projectID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var req registerFileReq
	if err := bindJSON(c, &req); err != nil {
		h.fail(c, err)
		return
	}

	file, err := newFile(projectID, req)
	if err != nil {
		h.fail(c, err)
		return
	}

	err = h.mutate(c, func(tx *gorm.DB) error {
		if err := access.Authorize(tx, id, access.OpFileWrite, projectID); err != nil {
			return err
		}
		loc, err := database.Find[models.StorageLocation](tx, req.StorageLocationID, "Storage location")
		if err != nil {
			return err
		}
		if !loc.IsActive {
			return apperr.Invalid(apperr.ReasonInactiveStorage, "Storage location %q is not active", loc.Name)
		}
		if file.ShotID != nil {
			shot, err := database.Find[models.Shot](tx, *file.ShotID, "Shot")
			if err != nil {
				return err
			}
			if shot.ProjectID != projectID {
				return apperr.Invalid(apperr.ReasonInvalidField, "Shot does not belong to this project")
			}
		}
		if file.AssetID != nil {
			asset, err := database.Find[models.Asset](tx, *file.AssetID, "Asset")
			if err != nil {
				return err
			}
			if asset.ProjectID != projectID {
				return apperr.Invalid(apperr.ReasonInvalidField, "Asset does not belong to this project")
			}
		}
		if err := database.EnsureUnique(tx, &models.File{}, "file_id", file.FileID, 0, "File"); err != nil {
			return err
		}

		file.FullStoragePath = path.Join(loc.BasePath, file.RelativePath)
		if err := database.Insert(tx, file, "File"); err != nil {
			return err
		}
		return audit(tx, id, "file", file.ID, "create", file.FileID+" "+file.FullStoragePath)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.RespondCreated(c, toFile(file))
}

// GET /projects/:id/files
// Optional filters: ?shot_id=, ?asset_id=.
func (h *Handler) ListFiles(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	projectID, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	db := h.conn(c)
	if err := access.Authorize(db, id, access.OpProjectRead, projectID); err != nil {
		h.fail(c, err)
		return
	}

	q := db.Where("project_id = ?", projectID).Order("id asc")
	for _, column := range []string{"shot_id", "asset_id"} {
		raw := c.Query(column)
		if raw == "" {
			continue
		}
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.fail(c, apperr.Invalid(apperr.ReasonInvalidField, "invalid %s %q", column, raw))
			return
		}
		q = q.Where(column+" = ?", n)
	}

	var files []models.File
	if err := q.Find(&files).Error; err != nil {
		h.fail(c, err)
		return
	}
	out := make([]FileResponse, 0, len(files))
	for i := range files {
		out = append(out, toFile(&files[i]))
	}
	response.RespondOK(c, out)
}

// GET /files/:file_id
func (h *Handler) GetFile(c *gin.Context) {
	id, ok := h.caller(c)
	if !ok {
		return
	}
	fileID, err := uuid.Parse(c.Param("file_id"))
	if err != nil {
		h.fail(c, apperr.Invalid(apperr.ReasonInvalidField, "file_id must be a UUID"))
		return
	}
	db := h.conn(c)
	var file models.File
	if err := db.Where("file_id = ?", fileID.String()).First(&file).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.fail(c, apperr.NotFound("File not found"))
			return
		}
		h.fail(c, err)
		return
	}
	if err := access.Authorize(db, id, access.OpProjectRead, file.ProjectID); err != nil {
		h.fail(c, err)
		return
	}
	response.RespondOK(c, toFile(&file))
}

// newFile validates the request fields that need no database lookups.
func newFile(projectID uint, req registerFileReq) (*models.File, error) {
	fileID := uuid.NewString()
	if raw := strings.TrimSpace(req.FileID); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return nil, apperr.Invalid(apperr.ReasonInvalidField, "file_id must be a UUID")
		}
		fileID = parsed.String()
	}

	original, err := requireName("original_filename", req.OriginalFilename)
	if err != nil {
		return nil, err
	}
	rel, err := cleanRelativePath(req.RelativePath)
	if err != nil {
		return nil, err
	}
	if req.StorageLocationID == 0 {
		return nil, apperr.Invalid(apperr.ReasonInvalidField, "storage_location_id is required")
	}

	shotID, assetID := optionalID(req.ShotID), optionalID(req.AssetID)
	if shotID != nil && assetID != nil {
		return nil, apperr.Invalid(apperr.ReasonInvalidField, "A file can be linked to a Shot or an Asset, not both.")
	}

	format := strings.ToLower(strings.TrimSpace(req.FileFormat))
	if format == "" {
		format = strings.ToLower(strings.TrimPrefix(path.Ext(original), "."))
	}
	if format == "" {
		return nil, apperr.Invalid(apperr.ReasonInvalidField, "file_format is required when the filename has no extension")
	}
	fileType := strings.TrimSpace(req.FileType)
	if fileType == "" {
		fileType = defaultFileType
	}

	return &models.File{
		FileID:            fileID,
		OriginalFilename:  original,
		RelativePath:      rel,
		FileFormat:        format,
		FileType:          fileType,
		StorageLocationID: req.StorageLocationID,
		ProjectID:         projectID,
		ShotID:            shotID,
		AssetID:           assetID,
	}, nil
}

// cleanRelativePath keeps registered paths inside their storage location.
func cleanRelativePath(raw string) (string, error) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "\\", "/"))
	if raw == "" {
		return "", apperr.Invalid(apperr.ReasonInvalidField, "relative_path must not be empty")
	}
	cleaned := path.Clean(raw)
	if path.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", apperr.Invalid(apperr.ReasonInvalidField, "relative_path %q leaves the storage location", raw)
	}
	return cleaned, nil
}
