package queries

const QueryCreateUser = `
INSERT INTO users (email, username, password_hash, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id;
`

const QueryGetUserByID = `
SELECT id, email, username, password_hash, image_url, created_at
FROM users
WHERE id = $1;
`

const QueryGetUserByEmail = `
SELECT id, email, username, password_hash, image_url, created_at
FROM users
WHERE email = $1;
`

const QueryGetUserByUsername = `
SELECT id, email, username, password_hash, image_url, created_at
FROM users
WHERE username = $1;
`

const QueryUpdateUserImageURL = `
UPDATE users SET image_url = $2 WHERE id = $1;
`
