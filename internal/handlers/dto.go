package handlers

import (
	"time"

	"github.com/RachelRYuan/Blogen/internal/models"
	"github.com/RachelRYuan/Blogen/internal/store"
)

// UserDTO is the outward representation of a user. The password hash
// never leaves the service boundary.
type UserDTO struct {
	ID             uint     `json:"id"`
	UserName       string   `json:"userName"`
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	AvatarFileName string   `json:"avatarFileName,omitempty"`
	Roles          []string `json:"roles"`
}

func toUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:             u.ID,
		UserName:       u.UserName,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		AvatarFileName: u.Prefs.Avatar.FileName,
		Roles:          u.RoleNames(),
	}
}

func toUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, toUserDTO(&users[i]))
	}
	return out
}

// CategoryDTO is the outward representation of a category.
type CategoryDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func toCategoryDTO(c *models.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Name: c.Name}
}

func toCategoryDTOs(categories []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, 0, len(categories))
	for i := range categories {
		out = append(out, toCategoryDTO(&categories[i]))
	}
	return out
}

// PostDTO is the outward representation of a post with its author,
// category and direct replies.
type PostDTO struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Text           string    `json:"text"`
	Created        time.Time `json:"created"`
	UserID         uint      `json:"userId"`
	UserName       string    `json:"userName"`
	AvatarFileName string    `json:"avatarFileName,omitempty"`
	CategoryName   string    `json:"categoryName"`
	ParentID       *uint     `json:"parentId,omitempty"`
	Children       []PostDTO `json:"children,omitempty"`
}

func toPostDTO(p *models.Post) PostDTO {
	dto := PostDTO{
		ID:             p.ID,
		Title:          p.Title,
		Text:           p.Text,
		Created:        p.Created,
		UserID:         p.UserID,
		UserName:       p.User.UserName,
		AvatarFileName: p.User.Prefs.Avatar.FileName,
		CategoryName:   p.Category.Name,
		ParentID:       p.ParentID,
	}
	for i := range p.Children {
		dto.Children = append(dto.Children, toPostDTO(&p.Children[i]))
	}
	return dto
}

func toPostDTOs(posts []models.Post) []PostDTO {
	out := make([]PostDTO, 0, len(posts))
	for i := range posts {
		out = append(out, toPostDTO(&posts[i]))
	}
	return out
}

// PageInfoDTO carries pagination metadata alongside a page of items.
type PageInfoDTO struct {
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
}

func toPageInfoDTO(r store.PaginationResult) PageInfoDTO {
	return PageInfoDTO{
		TotalElements: r.Total,
		TotalPages:    r.TotalPages,
		PageNumber:    r.CurrentPage,
		PageSize:      r.PageSize,
	}
}

// Request bodies

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type signupRequest struct {
	UserName       string `json:"userName" binding:"required,min=2,max=30"`
	Password       string `json:"password" binding:"required,min=8"`
	Email          string `json:"email" binding:"required,email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	AvatarFileName string `json:"avatarFileName"`
}

type updateUserRequest struct {
	UserName       string `json:"userName" binding:"omitempty,min=2,max=30"`
	Email          string `json:"email" binding:"omitempty,email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	AvatarFileName string `json:"avatarFileName"`
}

type passwordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

type postRequest struct {
	Title        string `json:"title" binding:"required"`
	Text         string `json:"text" binding:"required"`
	CategoryName string `json:"categoryName" binding:"required"`
}

type categoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=40"`
}
