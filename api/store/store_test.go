/* store_test.go
 * Contains unit tests for store.go and store_interface.go
 */

package store

import (
	"context"
	"testing"
)

func TestNewStore_EmptyDBName(t *testing.T) {
	_, err := NewStore(context.Background(), "", "mongodb://localhost:27017")
	if err == nil {
		t.Fatal("Expected error for empty dbName, got nil")
	}
}

// Test getter methods
func TestStore_GetDatabase(t *testing.T) {
	// Test that the getter works - actual database would be set by NewStore
	s := &Store{}
	result := s.GetDatabase()

	// Just verify method exists and compiles correctly
	_ = result
}

func TestStore_GetClient(t *testing.T) {
	s := &Store{Client: nil}
	result := s.GetClient()

	// Just test that method exists and returns (even if nil)
	_ = result
}
