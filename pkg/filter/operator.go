package filter

// FilterOperator is the operator of a content filter element.
type FilterOperator uint32

const (
	OperatorEquals             FilterOperator = 0
	OperatorIsNull             FilterOperator = 1
	OperatorGreaterThan        FilterOperator = 2
	OperatorLessThan           FilterOperator = 3
	OperatorGreaterThanOrEqual FilterOperator = 4
	OperatorLessThanOrEqual    FilterOperator = 5
	OperatorLike               FilterOperator = 6
	OperatorNot                FilterOperator = 7
	OperatorBetween            FilterOperator = 8
	OperatorInList             FilterOperator = 9
	OperatorAnd                FilterOperator = 10
	OperatorOr                 FilterOperator = 11
	OperatorCast               FilterOperator = 12
	OperatorInView             FilterOperator = 13
	OperatorOfType             FilterOperator = 14
	OperatorRelatedTo          FilterOperator = 15
	OperatorBitwiseAnd         FilterOperator = 16
	OperatorBitwiseOr          FilterOperator = 17
)

// String returns the operator name.
func (o FilterOperator) String() string {
	switch o {
	case OperatorEquals:
		return "Equals"
	case OperatorIsNull:
		return "IsNull"
	case OperatorGreaterThan:
		return "GreaterThan"
	case OperatorLessThan:
		return "LessThan"
	case OperatorGreaterThanOrEqual:
		return "GreaterThanOrEqual"
	case OperatorLessThanOrEqual:
		return "LessThanOrEqual"
	case OperatorLike:
		return "Like"
	case OperatorNot:
		return "Not"
	case OperatorBetween:
		return "Between"
	case OperatorInList:
		return "InList"
	case OperatorAnd:
		return "And"
	case OperatorOr:
		return "Or"
	case OperatorCast:
		return "Cast"
	case OperatorInView:
		return "InView"
	case OperatorOfType:
		return "OfType"
	case OperatorRelatedTo:
		return "RelatedTo"
	case OperatorBitwiseAnd:
		return "BitwiseAnd"
	case OperatorBitwiseOr:
		return "BitwiseOr"
	default:
		return "Unknown"
	}
}

// IsValid returns true if o is a defined operator.
func (o FilterOperator) IsValid() bool {
	return o <= OperatorBitwiseOr
}
