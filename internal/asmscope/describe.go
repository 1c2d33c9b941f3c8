package asmscope

import (
	"github.com/inlineasm/asmscope/internal/asmast"
	"github.com/inlineasm/asmscope/internal/utils"
)

// A TreeDescription is a serializable snapshot of a Tree, scopes are listed in creation order.
type TreeDescription struct {
	Scopes []ScopeDescription `json:"scopes"`
}

type ScopeDescription struct {
	Index           int                     `json:"index"`
	SuperScope      int                     `json:"superScope"` //-1 for the root scope
	SubScopes       []int                   `json:"subScopes"`
	IsFunctionScope bool                    `json:"isFunctionScope"`
	BlockSpan       *asmast.NodeSpan        `json:"blockSpan,omitempty"`
	Identifiers     []IdentifierDescription `json:"identifiers"`
}

type IdentifierDescription struct {
	Name string `json:"name"`
	Kind string `json:"kind"`

	//label
	LabelID          *LabelID `json:"labelID,omitempty"`
	StackAdjustment  *int     `json:"stackAdjustment,omitempty"`
	ResetStackHeight bool     `json:"resetStackHeight,omitempty"`

	//function
	Arguments *int `json:"arguments,omitempty"`
	Returns   *int `json:"returns,omitempty"`
}

func (t *Tree) Describe() TreeDescription {
	desc := TreeDescription{
		Scopes: make([]ScopeDescription, 0, len(t.ordered)),
	}

	for _, scope := range t.ordered {
		desc.Scopes = append(desc.Scopes, scope.Describe())
	}
	return desc
}

func (s *Scope) Describe() ScopeDescription {
	desc := ScopeDescription{
		Index:           s.index,
		SuperScope:      -1,
		IsFunctionScope: s.isFunctionScope,
		Identifiers:     make([]IdentifierDescription, 0, s.IdentifierCount()),
	}

	if s.superScope != nil {
		desc.SuperScope = s.superScope.index
	}

	if s.block != nil {
		span := s.block.Span
		desc.BlockSpan = &span
	}

	desc.SubScopes = utils.MapSlice(s.subScopes, func(sub *Scope) int { return sub.index })

	s.ForEachIdentifier(func(name string, id Identifier) {
		idDesc := IdentifierDescription{
			Name: name,
			Kind: id.KindName(),
		}

		switch id := id.(type) {
		case *Label:
			labelID := id.ID
			idDesc.LabelID = &labelID
			if id.HasStackAdjustment {
				adjustment := id.StackAdjustment
				idDesc.StackAdjustment = &adjustment
			}
			idDesc.ResetStackHeight = id.ResetStackHeight
		case *Function:
			args, rets := id.Arguments, id.Returns
			idDesc.Arguments = &args
			idDesc.Returns = &rets
		}

		desc.Identifiers = append(desc.Identifiers, idDesc)
	})

	return desc
}

// A LookupDescription is the result of looking up a name from a scope.
type LookupDescription struct {
	Scope          int    `json:"scope"`
	InsideFunction bool   `json:"insideFunction"`
	Kind           string `json:"kind,omitempty"` //empty if the name was not found
	Accessible     bool   `json:"accessible"`
	Error          string `json:"error,omitempty"`
}

// DescribeLookup looks up $name from every scope of the tree, in creation order.
func (t *Tree) DescribeLookup(name string) []LookupDescription {
	descriptions := make([]LookupDescription, 0, len(t.ordered))

	for _, scope := range t.ordered {
		desc := LookupDescription{
			Scope:          scope.index,
			InsideFunction: scope.InsideFunction(),
		}

		id, err := scope.Lookup(name)
		if id != nil {
			desc.Kind = id.KindName()
		}
		if err != nil {
			desc.Error = err.Error()
		} else {
			desc.Accessible = true
		}

		descriptions = append(descriptions, desc)
	}
	return descriptions
}
