package entry

import (
	"fmt"
)

// Type represents a ledger entry type
type Type uint16

// All known ledger entry types
const (
	TypeApproval  Type = 0x0061 // Operator approvals, keyed by (owner, operator)
	TypeBalance   Type = 0x0062 // Asset balances, keyed by (asset, account)
	TypeLPBalance Type = 0x006c // Liquidity provider shares, keyed by account
	TypePool      Type = 0x0050 // AMM pool record (singleton)
	TypeSequence  Type = 0x0073 // Next transaction sequence, keyed by account
)

// String returns the name of the entry type
func (t Type) String() string {
	switch t {
	case TypeApproval:
		return "Approval"
	case TypeBalance:
		return "Balance"
	case TypeLPBalance:
		return "LPBalance"
	case TypePool:
		return "Pool"
	case TypeSequence:
		return "AccountSequence"
	default:
		return fmt.Sprintf("Unknown(0x%04x)", uint16(t))
	}
}
