// go test github.com/homemade/notebook-inject/ticket -v
package ticket

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Check(t *testing.T) {
	store := NewStore(nil)
	ticket := store.Issue("admin", []string{"admin"})
	_, err := uuid.Parse(ticket)
	require.NoError(t, err)

	assert.True(t, store.Check(Ticket{Principal: "admin", Ticket: ticket}))
	assert.False(t, store.Check(Ticket{Principal: "admin", Ticket: "stale"}))
	assert.False(t, store.Check(Ticket{Principal: "guest", Ticket: ticket}))

	reissued := store.Issue("admin", nil)
	assert.NotEqual(t, ticket, reissued)
	assert.False(t, store.Check(Ticket{Principal: "admin", Ticket: ticket}))

	store.Remove("admin")
	assert.False(t, store.Check(Ticket{Principal: "admin", Ticket: reissued}))
}

func TestStore_EmptyStoredTicket(t *testing.T) {
	store := NewStore(nil)
	store.entries["anonymous"] = Entry{}

	assert.False(t, store.Check(Ticket{Principal: "anonymous", Ticket: ""}))
}

func TestStore_ConcurrentIssue(t *testing.T) {
	store := &Store{}
	var wg sync.WaitGroup
	for _, p := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func(principal string) {
			defer wg.Done()
			tk := store.Issue(principal, nil)
			assert.True(t, store.Check(Ticket{Principal: principal, Ticket: tk}))
		}(p)
	}
	wg.Wait()
}

func TestParse(t *testing.T) {
	ticket, err := Parse([]byte(`{"principal":"admin","ticket":"d348309d-0c0a-4c49-bb0e-f8f58a71058d","roles":["admin"]}`))
	require.NoError(t, err)
	assert.Equal(t, Ticket{
		Principal: "admin",
		Ticket:    "d348309d-0c0a-4c49-bb0e-f8f58a71058d",
		Roles:     []string{"admin"},
	}, ticket)

	_, err = Parse([]byte(`{"principal":`))
	assert.Error(t, err)
}
