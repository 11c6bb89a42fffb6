package dto

import "io"

// PageQuery is bound from the query string of every list endpoint.
type PageQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Search string `form:"search" binding:"max=100"`
}

// Window converts the requested page into offset and limit for a fixed page size.
func (q PageQuery) Window(size int) (page, offset, limit int) {
	page = q.Page
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	return page, (page - 1) * size, size
}

type PageResult[T any] struct {
	Items []T
	Total int64
	Page  int
	Size  int
}

func NewPage[T any](items []T, total int64, page, size int) *PageResult[T] {
	if items == nil {
		items = []T{}
	}
	return &PageResult[T]{Items: items, Total: total, Page: page, Size: size}
}

func (p *PageResult[T]) HasNext() bool {
	return int64(p.Page)*int64(p.Size) < p.Total
}

func (p *PageResult[T]) HasPrevious() bool {
	return p.Page > 1
}

// Map converts the items of a page, keeping its position.
func Map[T, R any](p *PageResult[T], fn func(T) R) *PageResult[R] {
	out := make([]R, 0, len(p.Items))
	for _, item := range p.Items {
		out = append(out, fn(item))
	}
	return &PageResult[R]{Items: out, Total: p.Total, Page: p.Page, Size: p.Size}
}

// PageResponse is the list envelope written to clients.
type PageResponse[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// UploadFile is a file received from a multipart form.
type UploadFile struct {
	Reader   io.Reader
	FileName string
}

type MessageResponse struct {
	Message string `json:"message"`
}
