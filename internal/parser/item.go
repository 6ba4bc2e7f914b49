package parser

import (
	"github.com/ferra-lang/ferra/internal/ast"
	"github.com/ferra-lang/ferra/internal/diag"
	"github.com/ferra-lang/ferra/internal/lexer"
	"github.com/ferra-lang/ferra/internal/source"
)

func isTopLevelItemStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.PUB, lexer.UNSAFE, lexer.ASYNC, lexer.FN, lexer.DATA,
		lexer.EXTERN, lexer.LET, lexer.VAR, lexer.STATIC, lexer.HASH:
		return true
	default:
		return false
	}
}

// ParseCompilationUnit iterates top-level items until EOF (spec §4.9),
// recovering to the next declaration boundary on each failure. It always
// succeeds at producing a (possibly partial) CompilationUnit; callers
// consult Diagnostics()/Report() to learn whether anything went wrong.
func (p *Parser) ParseCompilationUnit() *ast.CompilationUnit {
	start := p.cur().Span
	var items []ast.Item

	for {
		p.skipNewlines()
		if p.check(lexer.EOF) {
			break
		}

		before := p.stream.Mark()
		item, ok := p.parseItem()
		if ok && item != nil {
			items = append(items, item)
			continue
		}

		if p.check(lexer.EOF) {
			break
		}
		p.recoverToDeclaration()
		if p.check(lexer.EOF) {
			// Recovery ran off the end of the file without finding another
			// declaration boundary: the malformed construct was never
			// closed, so there is nothing left to resynchronize on.
			p.add(diag.UnexpectedEOF("a declaration after a parse error", p.cur().Span))
			break
		}
		if p.stream.Mark() == before {
			p.advance() // guarantee monotonic progress (property 9)
		}

		// "At compilation-unit level, up to the collector cap (default 50)
		// errors are reported before the parser stops" (spec §9).
		if !p.collect.ShouldContinue() {
			break
		}
	}

	end := p.cur().Span
	if len(items) > 0 {
		end = items[len(items)-1].Span()
	}
	return ast.NewCompilationUnit(items, mergeSpan(start, end))
}

func (p *Parser) parseModifiers() ast.Modifiers {
	var mods ast.Modifiers
	for {
		switch p.cur().Type {
		case lexer.PUB:
			mods.IsPublic = true
			p.advance()
			continue
		case lexer.UNSAFE:
			mods.IsUnsafe = true
			p.advance()
			continue
		}
		break
	}
	return mods
}

func (p *Parser) parseItem() (ast.Item, bool) {
	start := p.cur().Span
	attrs, ok := p.parseAttributes()
	if !ok {
		return nil, false
	}
	mods := p.parseModifiers()

	isAsync := false
	if p.check(lexer.ASYNC) {
		isAsync = true
		p.advance()
	}

	switch p.cur().Type {
	case lexer.FN:
		return p.parseFunctionDecl(mods, isAsync, attrs, start)
	case lexer.DATA:
		return p.parseDataClassDecl(mods, attrs, start)
	case lexer.EXTERN:
		if len(attrs) > 0 {
			p.add(diag.UnsupportedAttributeTarget("extern block", start))
			return nil, false
		}
		return p.parseExternBlock(start)
	case lexer.LET, lexer.VAR, lexer.STATIC:
		if len(attrs) > 0 {
			p.add(diag.UnsupportedAttributeTarget("top-level variable declaration", start))
			return nil, false
		}
		return p.parseVariableDeclItem(mods, start)
	default:
		p.add(diag.ExpectedStatement(p.describe(p.cur()), p.cur().Span))
		return nil, false
	}
}

func (p *Parser) parseFunctionDecl(mods ast.Modifiers, isAsync bool, attrs []*ast.Attribute, start source.Span) (ast.Item, bool) {
	p.advance() // consume 'fn'

	name, ok := p.expect(lexer.IDENT, "as a function name")
	if !ok {
		return nil, false
	}

	generics, ok := p.parseGenericParams()
	if !ok {
		return nil, false
	}

	if _, ok := p.expect(lexer.LPAREN, "to start a parameter list"); !ok {
		return nil, false
	}
	params, ok := p.parseParamList()
	if !ok {
		return nil, false
	}

	var ret ast.Type
	if p.match(lexer.ARROW) {
		t, ok := p.parseType()
		if !ok {
			return nil, false
		}
		ret = t
	} else {
		ret = ast.NewTupleType(nil, p.cur().Span)
	}

	if p.check(lexer.WHERE) {
		w, ok := p.parseWhereClause()
		if !ok {
			return nil, false
		}
		if generics == nil {
			generics = ast.NewGenericParams(nil, w, w.Span())
		} else {
			generics.Where = w
		}
	}

	var body *ast.Block
	end := p.lastConsumed
	if p.match(lexer.SEMICOLON) {
		// signature-only declaration (forward decl, e.g. `async fn foo();`);
		// body stays nil but IsAsync below still records the modifier.
	} else {
		b, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		b.IsAsync = b.IsAsync || isAsync
		body = b
		end = body.Span()
	}

	return ast.NewFunctionDecl(mods, name.Lexeme, generics, params, ret, body, isAsync, false, "", attrs, mergeSpan(start, end)), true
}

// parseParamList parses `name: Type, ...)` — the caller has already
// consumed the opening '('.
func (p *Parser) parseParamList() ([]*ast.Param, bool) {
	res, ok := parseDelimited[*ast.Param](p, delimitedConfig{
		Closing:               lexer.RPAREN,
		AllowEmpty:            true,
		AllowTrailing:         true,
		MissingElementContext: "in parameter list",
	}, func(int) (*ast.Param, bool) { return p.parseParam() })
	if !ok {
		return nil, false
	}
	return res.Items, true
}

func (p *Parser) parseParam() (*ast.Param, bool) {
	name, ok := p.expect(lexer.IDENT, "as a parameter name")
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(lexer.COLON, "after parameter name"); !ok {
		return nil, false
	}
	typ, ok := p.parseType()
	if !ok {
		return nil, false
	}
	return p.paramArena.Alloc(*ast.NewParam(name.Lexeme, typ, mergeSpan(name.Span, typ.Span()))), true
}

func (p *Parser) parseDataClassDecl(mods ast.Modifiers, attrs []*ast.Attribute, start source.Span) (ast.Item, bool) {
	p.advance() // consume 'data'
	name, ok := p.expect(lexer.IDENT, "as a data class name")
	if !ok {
		return nil, false
	}

	generics, ok := p.parseGenericParams()
	if !ok {
		return nil, false
	}

	if _, ok := p.expect(lexer.LBRACE, "to start data class fields"); !ok {
		return nil, false
	}

	var fields []*ast.DataClassField
	if !p.check(lexer.RBRACE) {
		for {
			f, ok := p.parseDataClassField()
			if !ok {
				return nil, false
			}
			fields = append(fields, f)
			if !p.match(lexer.COMMA) {
				break
			}
			if p.check(lexer.RBRACE) {
				break
			}
		}
	}

	end, ok := p.expect(lexer.RBRACE, "to close data class fields")
	if !ok {
		return nil, false
	}
	return ast.NewDataClassDecl(mods, name.Lexeme, generics, fields, attrs, mergeSpan(start, end.Span)), true
}

func (p *Parser) parseDataClassField() (*ast.DataClassField, bool) {
	start := p.cur().Span
	fieldAttrs, ok := p.parseAttributes()
	if !ok {
		return nil, false
	}
	mods := p.parseModifiers()
	name, ok := p.expect(lexer.IDENT, "as a data class field name")
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(lexer.COLON, "after data class field name"); !ok {
		return nil, false
	}
	typ, ok := p.parseType()
	if !ok {
		return nil, false
	}
	span := typ.Span()
	if len(fieldAttrs) > 0 {
		span = mergeSpan(start, span)
	} else {
		span = mergeSpan(name.Span, span)
	}
	return p.fieldArena.Alloc(*ast.NewDataClassField(mods, name.Lexeme, typ, fieldAttrs, span)), true
}

func (p *Parser) parseExternBlock(start source.Span) (ast.Item, bool) {
	p.advance() // consume 'extern'
	abi := ""
	if p.check(lexer.STRING) {
		abi = p.advance().Literal.Str
	}
	if _, ok := p.expect(lexer.LBRACE, "to start an extern block"); !ok {
		return nil, false
	}

	var funcs []*ast.ExternFunction
	var vars []*ast.ExternVariable
	for !p.check(lexer.RBRACE) && !p.check(lexer.EOF) {
		p.skipNewlines()
		if p.check(lexer.RBRACE) {
			break
		}
		switch p.cur().Type {
		case lexer.FN:
			f, ok := p.parseExternFunction()
			if !ok {
				return nil, false
			}
			funcs = append(funcs, f)
		case lexer.STATIC:
			v, ok := p.parseExternVariable()
			if !ok {
				return nil, false
			}
			vars = append(vars, v)
		default:
			p.add(diag.ExpectedStatement(p.describe(p.cur()), p.cur().Span))
			return nil, false
		}
	}

	end, ok := p.expect(lexer.RBRACE, "to close an extern block")
	if !ok {
		return nil, false
	}
	return ast.NewExternBlock(abi, funcs, vars, mergeSpan(start, end.Span)), true
}

func (p *Parser) parseExternFunction() (*ast.ExternFunction, bool) {
	start := p.advance().Span // consume 'fn'
	name, ok := p.expect(lexer.IDENT, "as a function name")
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(lexer.LPAREN, "to start a parameter list"); !ok {
		return nil, false
	}
	params, ok := p.parseParamList()
	if !ok {
		return nil, false
	}
	var ret ast.Type
	if p.match(lexer.ARROW) {
		t, ok := p.parseType()
		if !ok {
			return nil, false
		}
		ret = t
	} else {
		ret = ast.NewTupleType(nil, p.cur().Span)
	}
	end, ok := p.expect(lexer.SEMICOLON, "after extern function signature")
	if !ok {
		return nil, false
	}
	return ast.NewExternFunction(name.Lexeme, params, ret, mergeSpan(start, end.Span)), true
}

func (p *Parser) parseExternVariable() (*ast.ExternVariable, bool) {
	start := p.advance().Span // consume 'static'
	name, ok := p.expect(lexer.IDENT, "as a variable name")
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(lexer.COLON, "after extern variable name"); !ok {
		return nil, false
	}
	typ, ok := p.parseType()
	if !ok {
		return nil, false
	}
	end, ok := p.expect(lexer.SEMICOLON, "after extern variable declaration")
	if !ok {
		return nil, false
	}
	_ = end
	return ast.NewExternVariable(name.Lexeme, typ, mergeSpan(start, typ.Span())), true
}

func (p *Parser) parseVariableDeclItem(mods ast.Modifiers, start source.Span) (ast.Item, bool) {
	isMutable := p.advance().Type != lexer.LET // 'var'/'static' both mutable-capable; 'let' is not
	name, ok := p.expect(lexer.IDENT, "after top-level variable keyword")
	if !ok {
		return nil, false
	}

	var typ ast.Type
	if p.match(lexer.COLON) {
		t, ok := p.parseType()
		if !ok {
			return nil, false
		}
		typ = t
	}

	var init ast.Expr
	end := p.lastConsumed
	if p.match(lexer.ASSIGN) {
		e, ok := p.parseExpression(bpLowest)
		if !ok {
			return nil, false
		}
		init = e
		end = init.Span()
	}
	p.match(lexer.SEMICOLON)

	return ast.NewVariableDeclItem(mods, name.Lexeme, isMutable, typ, init, mergeSpan(start, end)), true
}
