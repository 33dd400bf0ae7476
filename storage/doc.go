// Copyright 2026 Forgeline Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package storage provides the persistence abstraction for the parts catalog.
//
// This package defines the repository interface that decouples storage
// implementation from the catalog and matching logic, so different backends
// (BadgerDB, in-memory, etc.) can be used interchangeably. The search
// indices themselves are NOT stored here: they are derived structures the
// catalog package rebuilds from the repository on load and reload.
//
// # Constructor Return Type Pattern
//
// Public constructors return the storage.CatalogRepository interface to
// enforce abstraction and enable multiple backend implementations:
//
//	repo, backend, err := badger.NewPartRepository(path)
//
// Internal package constructors may return concrete types since they're only
// used within the implementation package.
//
// # Usage
//
// Create a repository instance:
//
//	repo, backend, err := badger.OpenPartRepository("/path/to/db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//	defer backend.Close()
//
// Use in tests with in-memory storage:
//
//	repo, backend, err := badger.NewMemoryRepository()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support concurrent
// access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and timeout
// support. Pass context.Background() for operations without specific timeout
// requirements.
package storage
