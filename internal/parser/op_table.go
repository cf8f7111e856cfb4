package parser

import (
	"lumen/internal/ast"
	"lumen/internal/grammar"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precAdditive       = 1 // + -
	precMultiplicative = 2 // * /
	precPower          = 3 // ^
)

// binaryOperator возвращает оператор, приоритет и правоассоциативность.
func (b *builder) binaryOperator(n *grammar.Node) (op ast.BinaryOp, prec int, rightAssoc bool) {
	switch n.Rule {
	case grammar.RuleAdd:
		return ast.BinaryAdd, precAdditive, false
	case grammar.RuleSubtract:
		return ast.BinarySub, precAdditive, false
	case grammar.RuleMultiply:
		return ast.BinaryMul, precMultiplicative, false
	case grammar.RuleDivide:
		return ast.BinaryDiv, precMultiplicative, false
	case grammar.RulePower:
		return ast.BinaryPow, precPower, true
	default:
		b.unexpected(n, "binary operator",
			grammar.RuleAdd, grammar.RuleSubtract, grammar.RuleMultiply, grammar.RuleDivide, grammar.RulePower)
		return 0, 0, false
	}
}
