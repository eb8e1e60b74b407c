package store

import "errors"

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")

	// ErrUserNotFound is returned when an order names an owner that does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrMenuNotFound is matched by every *MenuNotFoundError
	ErrMenuNotFound = errors.New("menu not found")

	// ErrMenuInUse blocks deleting a menu that existing order lines still reference
	ErrMenuInUse = errors.New("menu is referenced by existing orders")

	// ErrNoOrderLines is returned by GetOrderMenusByOrderID for an order without lines.
	// It matches ErrNotFound under errors.Is.
	ErrNoOrderLines = notFoundError("no order menus found for the specified order")
)

// MenuNotFoundError names the menu id an order line referenced
type MenuNotFoundError struct {
	MenuID string
}

func (e *MenuNotFoundError) Error() string {
	return "Menu item with ID " + e.MenuID + " not found."
}

func (e *MenuNotFoundError) Is(target error) bool {
	return target == ErrMenuNotFound || target == ErrNotFound
}

type notFoundError string

func (e notFoundError) Error() string { return string(e) }

func (e notFoundError) Is(target error) bool { return target == ErrNotFound }
