package swap

// Status is the lifecycle state of a swap request. pending is the unique
// initial state; rejected, cancelled and completed are terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Role identifies which side of a swap request the caller is on.
type Role int

const (
	RoleNone Role = iota
	RoleRequester
	RoleProvider
)

type edge struct {
	from   Status
	target Status
}

// transitions is the single authority for every status change. Each edge
// names the roles allowed to drive it; an edge absent from this map is
// invalid no matter who the caller is.
var transitions = map[edge][]Role{
	{StatusPending, StatusAccepted}:   {RoleProvider},
	{StatusPending, StatusRejected}:   {RoleProvider},
	{StatusPending, StatusCancelled}:  {RoleRequester},
	{StatusAccepted, StatusCompleted}: {RoleRequester, RoleProvider},
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func Terminal(s Status) bool {
	switch s {
	case StatusRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether the edge from -> target exists at all,
// independent of the caller.
func CanTransition(from, target Status) bool {
	_, ok := transitions[edge{from, target}]
	return ok
}

// Authorize checks a proposed transition against the table. It returns
// (edgeOK, roleOK): edgeOK is false when the state machine has no such edge,
// roleOK is false when the edge exists but the caller's role may not drive it.
func Authorize(from, target Status, role Role) (bool, bool) {
	roles, ok := transitions[edge{from, target}]
	if !ok {
		return false, false
	}
	for _, r := range roles {
		if r == role {
			return true, true
		}
	}
	return true, false
}

// Deletable reports whether the requester may withdraw the request outright.
// Only the requester deletes, and only while nothing binding happened.
func Deletable(s Status) bool {
	return s == StatusPending || s == StatusRejected
}
