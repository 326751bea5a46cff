package handlers

import (
	"time"

	"prodtrack/internal/models"
)

type OrganizationResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

func toOrganization(o *models.Organization) OrganizationResponse {
	return OrganizationResponse{ID: o.ID, Name: o.Name, Status: o.Status}
}

type AccountResponse struct {
	ID             uint   `json:"id"`
	AccountName    string `json:"account_name"`
	DisplayName    string `json:"display_name"`
	AccountType    string `json:"account_type"`
	OrganizationID uint   `json:"organization_id"`
}

func toAccount(a *models.Account) AccountResponse {
	return AccountResponse{
		ID:             a.ID,
		AccountName:    a.AccountName,
		DisplayName:    a.DisplayName,
		AccountType:    string(a.AccountType),
		OrganizationID: a.OrganizationID,
	}
}

type ProjectResponse struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	OrganizationID uint   `json:"organization_id"`
}

func toProject(p *models.Project) ProjectResponse {
	return ProjectResponse{ID: p.ID, Name: p.Name, Status: p.Status, OrganizationID: p.OrganizationID}
}

// ProjectDetails is a project with its members, shots and assets.
type ProjectDetails struct {
	ProjectResponse
	Members []MemberResponse `json:"members"`
	Shots   []ShotResponse   `json:"shots"`
	Assets  []AssetResponse  `json:"assets"`
}

type MemberResponse struct {
	ID          uint             `json:"id"`
	DisplayName string           `json:"display_name"`
	Department  string           `json:"department"`
	Role        string           `json:"role"`
	ProjectID   uint             `json:"project_id"`
	AccountID   *uint            `json:"account_id"`
	Account     *AccountResponse `json:"account,omitempty"`
}

func toMember(m *models.ProjectMember) MemberResponse {
	out := MemberResponse{
		ID:          m.ID,
		DisplayName: m.DisplayName,
		Department:  m.Department,
		Role:        m.Role,
		ProjectID:   m.ProjectID,
		AccountID:   m.AccountID,
	}
	if m.Account != nil {
		acc := toAccount(m.Account)
		out.Account = &acc
	}
	return out
}

type ShotResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	ProjectID uint   `json:"project_id"`
}

func toShot(s *models.Shot) ShotResponse {
	return ShotResponse{ID: s.ID, Name: s.Name, Status: s.Status, ProjectID: s.ProjectID}
}

type AssetResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	AssetType string `json:"asset_type"`
	Status    string `json:"status"`
	ProjectID uint   `json:"project_id"`
}

func toAsset(a *models.Asset) AssetResponse {
	return AssetResponse{ID: a.ID, Name: a.Name, AssetType: a.AssetType, Status: a.Status, ProjectID: a.ProjectID}
}

type TaskResponse struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Status       string          `json:"status"`
	StartDate    *string         `json:"start_date"`
	EndDate      *string         `json:"end_date"`
	AssignedToID *uint           `json:"assigned_to_id"`
	AssignedTo   *MemberResponse `json:"assigned_to,omitempty"`
	ShotID       *uint           `json:"shot_id"`
	AssetID      *uint           `json:"asset_id"`
}

func toTask(t *models.Task) TaskResponse {
	out := TaskResponse{
		ID:           t.ID,
		Name:         t.Name,
		Status:       t.Status,
		StartDate:    formatDate(t.StartDate),
		EndDate:      formatDate(t.EndDate),
		AssignedToID: t.AssignedToID,
		ShotID:       t.ShotID,
		AssetID:      t.AssetID,
	}
	if t.AssignedTo != nil {
		m := toMember(t.AssignedTo)
		out.AssignedTo = &m
	}
	return out
}

func toTasks(tasks []models.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, toTask(&tasks[i]))
	}
	return out
}

// DependenciesResponse lists both directions of a task's dependency edges.
type DependenciesResponse struct {
	TaskID        uint           `json:"task_id"`
	DependsOn     []TaskResponse `json:"depends_on"`
	DependencyFor []TaskResponse `json:"dependency_for"`
}

type StorageLocationResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	LocationType string `json:"location_type"`
	BasePath     string `json:"base_path"`
	IsActive     bool   `json:"is_active"`
}

func toStorageLocation(s *models.StorageLocation) StorageLocationResponse {
	return StorageLocationResponse{
		ID:           s.ID,
		Name:         s.Name,
		LocationType: s.LocationType,
		BasePath:     s.BasePath,
		IsActive:     s.IsActive,
	}
}

type FileResponse struct {
	ID                uint      `json:"id"`
	FileID            string    `json:"file_id"`
	OriginalFilename  string    `json:"original_filename"`
	RelativePath      string    `json:"relative_path"`
	FullStoragePath   string    `json:"full_storage_path"`
	FileFormat        string    `json:"file_format"`
	FileType          string    `json:"file_type"`
	StorageLocationID uint      `json:"storage_location_id"`
	ProjectID         uint      `json:"project_id"`
	ShotID            *uint     `json:"shot_id"`
	AssetID           *uint     `json:"asset_id"`
	CreatedAt         time.Time `json:"created_at"`
}

func toFile(f *models.File) FileResponse {
	return FileResponse{
		ID:                f.ID,
		FileID:            f.FileID,
		OriginalFilename:  f.OriginalFilename,
		RelativePath:      f.RelativePath,
		FullStoragePath:   f.FullStoragePath,
		FileFormat:        f.FileFormat,
		FileType:          f.FileType,
		StorageLocationID: f.StorageLocationID,
		ProjectID:         f.ProjectID,
		ShotID:            f.ShotID,
		AssetID:           f.AssetID,
		CreatedAt:         f.CreatedAt,
	}
}

type AuditLogResponse struct {
	ID          uint      `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	AccountID   uint      `json:"account_id"`
	AccountName string    `json:"account_name,omitempty"`
	Entity      string    `json:"entity"`
	EntityID    uint      `json:"entity_id"`
	Action      string    `json:"action"`
	Details     string    `json:"details"`
}

func toAuditLog(l *models.AuditLog) AuditLogResponse {
	out := AuditLogResponse{
		ID:        l.ID,
		CreatedAt: l.CreatedAt,
		AccountID: l.AccountID,
		Entity:    l.Entity,
		EntityID:  l.EntityID,
		Action:    l.Action,
		Details:   l.Details,
	}
	if l.Account != nil {
		out.AccountName = l.Account.AccountName
	}
	return out
}
