// Package sqlsource serves model records out of relational tables through GORM.
//
// Each registered type maps to one table. A batch fetch is a single
// `SELECT * FROM <table> WHERE <id_column> IN ?` query; reference columns are
// rewritten into {type, id} stubs and has-many relations are loaded with one extra
// query per relation, so a batch of N ids costs 1+R round-trips regardless of N.
//
// # Configuration
//
//	source:
//	  kind: sql
//	  tables:
//	    - type: Person
//	      table: people
//	      refs:
//	        - { column: manager_id, attr: manager, type: Person }
//	      has_many:
//	        - { attr: user_roles, table: user_roles, foreign_key: person_id, type: UserRole }
package sqlsource
