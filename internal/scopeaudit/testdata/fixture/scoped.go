package fixture

const getCustomerQuery = `
	SELECT id, outfitter_id, first_name, last_name, email
	FROM customers
	WHERE outfitter_id = $1 AND id = $2`

const insertCustomerQuery = `
	INSERT INTO customers (outfitter_id, first_name, last_name, email)
	VALUES ($1, $2, $3, $4)
	RETURNING id`

const getOutfitterQuery = `
	SELECT id, name, active
	FROM outfitters
	WHERE id = $1`

const notSQL = "select a customer from the list"
