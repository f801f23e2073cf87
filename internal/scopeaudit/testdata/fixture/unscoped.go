package fixture

const listAllBookingsQuery = `
	SELECT id, customer_id, status
	FROM bookings
	ORDER BY starts_at`

const deleteCustomerQuery = `DELETE FROM customers WHERE id = $1`

const insertBookingQuery = `
	INSERT INTO bookings (customer_id, experience_id, party_size)
	VALUES ($1, $2, $3)`
