package repository

import "errors"

var (
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrCustomerAlreadyExists = errors.New("customer already exists")
	ErrPurchaseAlreadyExists = errors.New("purchase already exists")
)
