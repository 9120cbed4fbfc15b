package config

// Declare builds a fresh Configuration and applies decls to it in order.
func Declare(decls ...Declaration) (*Configuration, error) {
	c := New()
	if err := c.Apply(decls...); err != nil {
		return nil, err
	}
	return c, nil
}

// Apply runs decls against c in order and stops at the first error.
func (c *Configuration) Apply(decls ...Declaration) error {
	for _, d := range decls {
		if d == nil {
			continue
		}
		if err := d(c); err != nil {
			return err
		}
	}
	return nil
}
