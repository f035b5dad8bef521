package ast

// BeginStatement starts a transaction
type BeginStatement struct{}

// CommitStatement commits a transaction
type CommitStatement struct{}

// RollbackStatement rolls back a transaction
type RollbackStatement struct{}

func (*BeginStatement) iStatement()    {}
func (*CommitStatement) iStatement()   {}
func (*RollbackStatement) iStatement() {}

func (*BeginStatement) Kind() StatementKind    { return KindBegin }
func (*CommitStatement) Kind() StatementKind   { return KindCommit }
func (*RollbackStatement) Kind() StatementKind { return KindRollback }
