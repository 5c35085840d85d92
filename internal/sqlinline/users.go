package sqlinline

const QInsertUser = `--sql 49edf42b-ccaf-46aa-bf11-6410e7da494d
insert into users(id, full_name, email, password_hash, created_at)
values (gen_random_uuid(), $1::text, $2::text, $3::text, now())
on conflict (email) do nothing
returning id;
`

const QSelectUserByEmail = `--sql 1e4f5a66-760b-4730-8f65-11cdd3a00722
select id, full_name, email, password_hash, created_at
from users
where email = $1::text
limit 1;
`

const QSelectUserByID = `--sql bbd13a2d-b26f-4be4-b8e9-a8c448364dd0
select id, full_name, email, created_at
from users
where id = $1::uuid
limit 1;
`
