package user

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/pkg/validator"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListFilter narrows the user list. Zero fields are ignored.
type ListFilter struct {
	Status   Status `json:"status,omitempty"`
	DeptName string `json:"deptName,omitempty"`
	RoleName string `json:"roleName,omitempty"`
}

type ListSort struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

type ListSearch struct {
	Keyword string   `json:"keyword"`
	Fields  []string `json:"fields,omitempty"`
}

type ListUsersRequest struct {
	Page   int
	Limit  int
	Filter *ListFilter
	Sort   *ListSort
	Search *ListSearch
}

var (
	sortableFields   = []string{"name", "email", "phone", "hireDate"}
	searchableFields = []string{"name", "email", "phone"}
)

// NewListUsersRequest builds a request from raw query values. Page and limit are
// clamped rather than rejected; filter, sort and search must be valid JSON when present.
func NewListUsersRequest(page, limit, filter, sort, search string) (ListUsersRequest, error) {
	req := ListUsersRequest{Page: 1, Limit: DefaultPageSize}

	if n, err := strconv.Atoi(page); err == nil && n > 1 {
		req.Page = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		req.Limit = min(n, MaxPageSize)
	}

	if err := decodeOptional(filter, &req.Filter); err != nil {
		return ListUsersRequest{}, err
	}
	if err := decodeOptional(sort, &req.Sort); err != nil {
		return ListUsersRequest{}, err
	}
	if err := decodeOptional(search, &req.Search); err != nil {
		return ListUsersRequest{}, err
	}
	return req, nil
}

func decodeOptional[T any](raw string, dst **T) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidListQuery, err)
	}
	*dst = &v
	return nil
}

func (r *ListUsersRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Filter != nil && r.Filter.Status != "" &&
		r.Filter.Status != StatusActive && r.Filter.Status != StatusInactive {
		errs.Add("filter.status", "status must be ACTIVE or INACTIVE")
	}

	if r.Sort != nil {
		if !validator.IsInSlice(r.Sort.Field, sortableFields) {
			errs.Add("sort.field", "field must be one of name, email, phone, hireDate")
		}
		order := strings.ToUpper(r.Sort.Order)
		if order != "ASC" && order != "DESC" {
			errs.Add("sort.order", "order must be ASC or DESC")
		}
	}

	if r.Search != nil {
		if validator.IsEmpty(r.Search.Keyword) {
			errs.Add("search.keyword", "keyword is required")
		}
		for _, f := range r.Search.Fields {
			if !validator.IsInSlice(f, searchableFields) {
				errs.Add("search.fields", "fields must be a subset of name, email, phone")
				break
			}
		}
	}

	return errs.Err()
}

func (r ListUsersRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

type UserResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Phone      *string `json:"phone"`
	HireDate   *string `json:"hire_date"`
	Department string  `json:"department"`
	Role       string  `json:"role"`
	Status     Status  `json:"status"`
}

func NewUserResponse(u User) UserResponse {
	var hireDate *string
	if u.HireDate != nil {
		s := u.HireDate.Format(time.DateOnly)
		hireDate = &s
	}
	return UserResponse{
		ID:         u.ID.String(),
		Email:      u.Email,
		Name:       u.Name,
		Phone:      u.Phone,
		HireDate:   hireDate,
		Department: u.DepartmentName,
		Role:       u.RoleName,
		Status:     u.Status,
	}
}

type ListUsersResponse struct {
	Users      []UserResponse `json:"users"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}
