package testutil

import "fmt"

// OpKind identifies a list operation.
type OpKind uint8

// Operation kinds. The order is part of the byte encoding; append only.
const (
	OpAdd OpKind = iota
	OpInsertAt
	OpRemoveAt
	OpRemoveValue
	OpGet
	OpSet
	OpCompact
	OpClear
	OpReserve
	OpSetThreshold
	OpRemoveWhere

	opKindCount
)

var opNames = [...]string{
	OpAdd:          "Add",
	OpInsertAt:     "InsertAt",
	OpRemoveAt:     "RemoveAt",
	OpRemoveValue:  "RemoveValue",
	OpGet:          "Get",
	OpSet:          "Set",
	OpCompact:      "Compact",
	OpClear:        "Clear",
	OpReserve:      "Reserve",
	OpSetThreshold: "SetThreshold",
	OpRemoveWhere:  "RemoveWhere",
}

func (k OpKind) String() string {
	if int(k) < len(opNames) {
		return opNames[k]
	}

	return fmt.Sprintf("OpKind(%d)", k)
}

// Op is one decoded operation. Unused fields are zero.
type Op struct {
	Kind  OpKind
	Pos   int
	Value string
	N     int
}

func (op Op) String() string {
	switch op.Kind {
	case OpAdd, OpRemoveValue:
		return fmt.Sprintf("%s(%q)", op.Kind, op.Value)
	case OpInsertAt, OpSet:
		return fmt.Sprintf("%s(%d, %q)", op.Kind, op.Pos, op.Value)
	case OpRemoveAt, OpGet:
		return fmt.Sprintf("%s(%d)", op.Kind, op.Pos)
	case OpReserve, OpSetThreshold:
		return fmt.Sprintf("%s(%d)", op.Kind, op.N)
	case OpRemoveWhere:
		return fmt.Sprintf("%s(prefix=%q)", op.Kind, op.Value)
	default:
		return op.Kind.String()
	}
}
