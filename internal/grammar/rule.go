package grammar

// Rule tags a parse-tree node with the production that produced it.
type Rule uint8

const (
	RuleModule Rule = iota
	RuleModDecl
	RulePub
	RuleIdent
	RuleFnDef
	RuleFnSig
	RuleArgs
	RuleArg
	RuleGenerics
	RuleWhereClause
	RuleConstraint
	RuleTraitDef
	RuleAssocType
	RuleImpl
	RuleTraitRef
	RuleAssocBinding
	RuleType
	RuleBlock
	RuleStatement
	RuleNonReturningStatement
	RuleExpr
	RuleAdd
	RuleSubtract
	RuleMultiply
	RuleDivide
	RulePower
	RuleTerm
	RuleUnary
	RuleNot
	RuleFnCall
	RuleParen
	RuleValue
	RuleNum
	RuleString
	RuleIfExpr
	RuleElseIfClause
	RuleElseClause
	RuleIdentPath
)

var ruleNames = [...]string{
	RuleModule:                "module",
	RuleModDecl:               "mod_decl",
	RulePub:                   "pub",
	RuleIdent:                 "ident",
	RuleFnDef:                 "fn_def",
	RuleFnSig:                 "fn_sig",
	RuleArgs:                  "args",
	RuleArg:                   "arg",
	RuleGenerics:              "generics",
	RuleWhereClause:           "where_clause",
	RuleConstraint:            "constraint",
	RuleTraitDef:              "trait_def",
	RuleAssocType:             "assoc_type",
	RuleImpl:                  "impl",
	RuleTraitRef:              "trait_ref",
	RuleAssocBinding:          "assoc_binding",
	RuleType:                  "type",
	RuleBlock:                 "block",
	RuleStatement:             "statement",
	RuleNonReturningStatement: "non_returning_statement",
	RuleExpr:                  "expr",
	RuleAdd:                   "add",
	RuleSubtract:              "subtract",
	RuleMultiply:              "multiply",
	RuleDivide:                "divide",
	RulePower:                 "power",
	RuleTerm:                  "term",
	RuleUnary:                 "unary",
	RuleNot:                   "not",
	RuleFnCall:                "fn_call",
	RuleParen:                 "paren",
	RuleValue:                 "value",
	RuleNum:                   "num",
	RuleString:                "string",
	RuleIfExpr:                "if_expr",
	RuleElseIfClause:          "elseif_clause",
	RuleElseClause:            "else_clause",
	RuleIdentPath:             "ident_path",
}

func (r Rule) String() string {
	if int(r) < len(ruleNames) {
		return ruleNames[r]
	}
	return "rule(?)"
}

// IsBinaryOp reports whether r tags an infix operator inside an expr node.
func (r Rule) IsBinaryOp() bool {
	return r >= RuleAdd && r <= RulePower
}
