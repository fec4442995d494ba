package swap

import "testing"

func TestAuthorize_Table(t *testing.T) {
	cases := []struct {
		name   string
		from   Status
		target Status
		role   Role
		edgeOK bool
		roleOK bool
	}{
		{"provider accepts pending", StatusPending, StatusAccepted, RoleProvider, true, true},
		{"provider rejects pending", StatusPending, StatusRejected, RoleProvider, true, true},
		{"requester cancels pending", StatusPending, StatusCancelled, RoleRequester, true, true},
		{"requester completes accepted", StatusAccepted, StatusCompleted, RoleRequester, true, true},
		{"provider completes accepted", StatusAccepted, StatusCompleted, RoleProvider, true, true},

		{"requester may not accept", StatusPending, StatusAccepted, RoleRequester, true, false},
		{"requester may not reject", StatusPending, StatusRejected, RoleRequester, true, false},
		{"provider may not cancel", StatusPending, StatusCancelled, RoleProvider, true, false},
		{"third party may not complete", StatusAccepted, StatusCompleted, RoleNone, true, false},

		{"complete a pending request", StatusPending, StatusCompleted, RoleProvider, false, false},
		{"accept an accepted request", StatusAccepted, StatusAccepted, RoleProvider, false, false},
		{"cancel an accepted request", StatusAccepted, StatusCancelled, RoleRequester, false, false},
		{"re-enter pending", StatusAccepted, StatusPending, RoleProvider, false, false},
		{"accept a rejected request", StatusRejected, StatusAccepted, RoleProvider, false, false},
		{"complete a completed request", StatusCompleted, StatusCompleted, RoleRequester, false, false},
		{"accept a cancelled request", StatusCancelled, StatusAccepted, RoleProvider, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			edgeOK, roleOK := Authorize(tc.from, tc.target, tc.role)
			if edgeOK != tc.edgeOK || roleOK != tc.roleOK {
				t.Fatalf("Authorize(%s, %s, %d) = (%v, %v), want (%v, %v)",
					tc.from, tc.target, tc.role, edgeOK, roleOK, tc.edgeOK, tc.roleOK)
			}
		})
	}
}

func TestTerminalStatesHaveNoOutgoingEdges(t *testing.T) {
	all := []Status{StatusPending, StatusAccepted, StatusRejected, StatusCompleted, StatusCancelled}
	for _, from := range all {
		if !Terminal(from) {
			continue
		}
		for _, target := range all {
			if CanTransition(from, target) {
				t.Fatalf("terminal state %s has outgoing edge to %s", from, target)
			}
		}
	}
}

func TestNoEdgeReentersPending(t *testing.T) {
	all := []Status{StatusPending, StatusAccepted, StatusRejected, StatusCompleted, StatusCancelled}
	for _, from := range all {
		if CanTransition(from, StatusPending) {
			t.Fatalf("edge %s -> pending must not exist", from)
		}
	}
}

func TestDeletable(t *testing.T) {
	if !Deletable(StatusPending) || !Deletable(StatusRejected) {
		t.Fatalf("pending and rejected requests must be deletable")
	}
	for _, s := range []Status{StatusAccepted, StatusCompleted, StatusCancelled} {
		if Deletable(s) {
			t.Fatalf("status %s must not be deletable", s)
		}
	}
}

func TestValidStatus(t *testing.T) {
	if ValidStatus(Status("draft")) {
		t.Fatalf("draft is not a valid status")
	}
	if !ValidStatus(StatusPending) {
		t.Fatalf("pending is a valid status")
	}
}
