package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateSites checks every site and rejects repeated ids.
func ValidateSites(sites []Site) error {
	seen := make(map[string]int, len(sites))
	for i := range sites {
		if err := validate.Struct(&sites[i]); err != nil {
			return fmt.Errorf("site %d: %w", i, err)
		}
		if prev, ok := seen[sites[i].ID]; ok {
			return fmt.Errorf("site %d: id %q already used by site %d", i, sites[i].ID, prev)
		}
		seen[sites[i].ID] = i
	}
	return nil
}

// ValidateClients checks every client.
func ValidateClients(clients []Client) error {
	for i := range clients {
		if err := validate.Struct(&clients[i]); err != nil {
			return fmt.Errorf("client %d: %w", i, err)
		}
	}
	return nil
}

// ValidateUser checks the session user.
func ValidateUser(user User) error {
	if err := validate.Struct(&user); err != nil {
		return fmt.Errorf("user: %w", err)
	}
	return nil
}
