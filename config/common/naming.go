package common

import "gorm.io/gorm/schema"

// NamingStrategy is shared by the application database and the test
// databases, raw SQL in the repositories depends on the t_ prefix.
func NamingStrategy() schema.NamingStrategy {
	return schema.NamingStrategy{
		TablePrefix:   "t_",
		SingularTable: true,
	}
}
