// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/passvault/internal/logger"
	"github.com/MKhiriev/passvault/internal/store"
	"github.com/MKhiriev/passvault/internal/utils"
	"github.com/MKhiriev/passvault/internal/validators"
)

// Services groups the services sharing one vault session.
type Services struct {
	Vault    VaultService
	Transfer TransferService
	Journal  store.Journal
}

// NewServices wires a locked vault service and a transfer service on top of
// it. journal may be [store.NopJournal].
func NewServices(journal store.Journal, kdf KDFSettings, log *logger.Logger) *Services {
	validator := validators.NewEntryValidator()
	vault := NewVaultService(validator, journal, utils.NewUUIDGenerator(), kdf, log)

	return &Services{
		Vault:    vault,
		Transfer: NewTransferService(vault, validator, journal),
		Journal:  journal,
	}
}
